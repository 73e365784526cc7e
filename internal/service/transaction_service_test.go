package service

import (
	"context"
	"testing"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrder(t *testing.T, store *memStore) *models.Order {
	t.Helper()
	p := store.addProduct("widget", 100, 50)
	orders := newOrderService(store)
	order, err := orders.PlaceOrder(context.Background(), userPrincipal, []models.OrderLine{
		{ProductID: p.ID, Quantity: 2},
	})
	require.NoError(t, err)
	return order
}

func TestCreateTransactionRecordsCompleted(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})

	txn, err := svc.CreateTransaction(context.Background(), userPrincipal, order.ID, order.TotalAmount)
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
	assert.Equal(t, order.ID, txn.OrderID)
	assert.Equal(t, order.ClientID, txn.ClientID)
	assert.Equal(t, order.TotalAmount, txn.Amount)
}

func TestCreateTransactionUnknownOrder(t *testing.T) {
	store := newMemStore()
	svc := NewTransactionService(store, nopPublisher{})

	_, err := svc.CreateTransaction(context.Background(), userPrincipal, 999, 100)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCreateTransactionAmountMustMatchOrderTotal(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})

	_, err := svc.CreateTransaction(context.Background(), userPrincipal, order.ID, order.TotalAmount+1)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}

func TestCreateTransactionRequiresOrderOwnership(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})

	_, err := svc.CreateTransaction(context.Background(), otherPrincipal, order.ID, order.TotalAmount)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Admins may record a transaction on any order; the owner stays the
	// order's client.
	txn, err := svc.CreateTransaction(context.Background(), adminPrincipal, order.ID, order.TotalAmount)
	require.NoError(t, err)
	assert.Equal(t, order.ClientID, txn.ClientID)
}

func TestRefundTransactionLifecycle(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})
	ctx := context.Background()

	txn, err := svc.CreateTransaction(ctx, userPrincipal, order.ID, order.TotalAmount)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)

	refunded, err := svc.RefundTransaction(ctx, adminPrincipal, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusRefunded, refunded.Status)

	// Refunded is terminal; a second refund must fail.
	_, err = svc.RefundTransaction(ctx, adminPrincipal, txn.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
}

func TestRefundTransactionAdminOnly(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})
	ctx := context.Background()

	txn, err := svc.CreateTransaction(ctx, userPrincipal, order.ID, order.TotalAmount)
	require.NoError(t, err)

	_, err = svc.RefundTransaction(ctx, userPrincipal, txn.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestRefundTransactionNotFound(t *testing.T) {
	svc := NewTransactionService(newMemStore(), nopPublisher{})

	_, err := svc.RefundTransaction(context.Background(), adminPrincipal, 999)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestGetTransactionOwnership(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})
	ctx := context.Background()

	txn, err := svc.CreateTransaction(ctx, userPrincipal, order.ID, order.TotalAmount)
	require.NoError(t, err)

	_, err = svc.GetTransaction(ctx, otherPrincipal, txn.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	got, err := svc.GetTransaction(ctx, userPrincipal, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)

	got, err = svc.GetTransaction(ctx, adminPrincipal, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)
}

func TestListTransactionsFiltersByOwner(t *testing.T) {
	store := newMemStore()
	order := setupOrder(t, store)
	svc := NewTransactionService(store, nopPublisher{})
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, userPrincipal, order.ID, order.TotalAmount)
	require.NoError(t, err)

	mine, err := svc.ListTransactions(ctx, userPrincipal)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	none, err := svc.ListTransactions(ctx, otherPrincipal)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.ListTransactions(ctx, adminPrincipal)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
