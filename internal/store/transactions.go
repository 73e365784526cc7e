package store

import (
	"context"
	"database/sql"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/models"
)

// CreateTransaction inserts a new transaction
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (order_id, client_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, t, query,
		t.OrderID, t.ClientID, t.Amount, t.Status)
}

// GetTransactionByID retrieves a transaction by ID
func (s *Store) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.GetContext(ctx, &t, "SELECT * FROM transactions WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "Transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTransactions retrieves all transactions
func (s *Store) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.SelectContext(ctx, &txns, "SELECT * FROM transactions ORDER BY created_at DESC")
	return txns, err
}

// GetTransactionsByClient retrieves transactions owned by a client
func (s *Store) GetTransactionsByClient(ctx context.Context, clientID int64) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.SelectContext(ctx, &txns,
		"SELECT * FROM transactions WHERE client_id = $1 ORDER BY created_at DESC", clientID)
	return txns, err
}

// MarkTransactionRefunded flips a completed transaction to refunded.
// The status check runs inside the UPDATE so two concurrent refunds
// cannot both succeed.
func (s *Store) MarkTransactionRefunded(ctx context.Context, id int64) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.GetContext(ctx, &t, `
		UPDATE transactions SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING *`,
		models.TransactionStatusRefunded, id, models.TransactionStatusCompleted)
	if err == sql.ErrNoRows {
		// Distinguish a missing row from an illegal transition.
		if _, gerr := s.GetTransactionByID(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, apperr.New(apperr.InvalidState, "Cannot refund a transaction that is not completed")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
