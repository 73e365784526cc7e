package service

import (
	"context"
	"time"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionStore is the storage surface the transaction state
// machine needs. Order lookup is included only to validate the
// referenced order.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionsByClient(ctx context.Context, clientID int64) ([]models.Transaction, error)
	MarkTransactionRefunded(ctx context.Context, id int64) (*models.Transaction, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
}

// TransactionService implements the transaction state machine:
// transactions are born completed and the only legal transition is
// completed -> refunded.
type TransactionService struct {
	store  TransactionStore
	events EventPublisher
	logger *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(store TransactionStore, events EventPublisher) *TransactionService {
	return &TransactionService{
		store:  store,
		events: events,
		logger: util.NamedLogger("transactions"),
	}
}

// CreateTransaction records a completed transaction against an
// existing order. The caller must own the order (or be admin) and the
// amount must equal the order's recorded total.
func (s *TransactionService) CreateTransaction(ctx context.Context, principal auth.Principal, orderID, amount int64) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.CreateTransaction")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !principal.CanAccess(order.ClientID) {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	if amount != order.TotalAmount {
		return nil, apperr.Newf(apperr.InvalidArgument,
			"Amount %d does not match order total %d", amount, order.TotalAmount)
	}

	txn := &models.Transaction{
		OrderID:  orderID,
		ClientID: order.ClientID,
		Amount:   amount,
		Status:   models.TransactionStatusCompleted,
	}
	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	util.TransactionsCreatedTotal.Inc()
	s.logger.Info("Transaction recorded",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("order_id", orderID),
		zap.Int64("amount", amount))

	event := &models.TransactionCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionCompleted,
			Timestamp: time.Now(),
		},
		TransactionID: txn.ID,
		OrderID:       orderID,
		ClientID:      txn.ClientID,
		Amount:        amount,
	}
	if err := s.events.PublishTransactionCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish TransactionCompleted event", zap.Error(err))
	}

	return txn, nil
}

// RefundTransaction moves a completed transaction to refunded.
// Admin-only; refunded is terminal.
func (s *TransactionService) RefundTransaction(ctx context.Context, principal auth.Principal, transactionID int64) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.RefundTransaction")
	defer span.End()

	if !principal.IsAdmin() {
		util.RefundsRejectedTotal.WithLabelValues("forbidden").Inc()
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}

	txn, err := s.store.MarkTransactionRefunded(ctx, transactionID)
	if err != nil {
		util.RefundsRejectedTotal.WithLabelValues(apperr.KindOf(err).String()).Inc()
		return nil, err
	}

	util.TransactionsRefundedTotal.Inc()
	s.logger.Info("Transaction refunded",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("order_id", txn.OrderID))

	event := &models.TransactionRefundedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionRefunded,
			Timestamp: time.Now(),
		},
		TransactionID: txn.ID,
		OrderID:       txn.OrderID,
		Amount:        txn.Amount,
	}
	if err := s.events.PublishTransactionRefunded(ctx, event); err != nil {
		s.logger.Error("Failed to publish TransactionRefunded event", zap.Error(err))
	}

	return txn, nil
}

// GetTransaction returns a transaction to its owner or an admin.
func (s *TransactionService) GetTransaction(ctx context.Context, principal auth.Principal, transactionID int64) (*models.Transaction, error) {
	txn, err := s.store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !principal.CanAccess(txn.ClientID) {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	return txn, nil
}

// ListTransactions returns all transactions for admins, or the
// principal's own.
func (s *TransactionService) ListTransactions(ctx context.Context, principal auth.Principal) ([]models.Transaction, error) {
	if principal.IsAdmin() {
		return s.store.GetTransactions(ctx)
	}
	return s.store.GetTransactionsByClient(ctx, principal.ID)
}
