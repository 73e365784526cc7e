package store

import (
	"context"
	"database/sql"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/models"
)

// CreateOrder applies the whole order placement as one unit of work:
// every product row is locked, checked, snapshotted and decremented
// inside a single transaction, then the order and its line snapshots
// are inserted. Any failure rolls back every decrement, so stock can
// never be left partially applied and can never go negative.
func (s *Store) CreateOrder(ctx context.Context, clientID int64, lines []models.OrderLine) (*models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	order := &models.Order{
		ClientID: clientID,
		Status:   models.OrderStatusPending,
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, ln := range lines {
		var p models.Product
		err := tx.GetContext(ctx, &p,
			"SELECT id, name, price, stock FROM products WHERE id = $1 FOR UPDATE", ln.ProductID)
		if err == sql.ErrNoRows {
			return nil, apperr.Newf(apperr.NotFound, "Product with id %d not found", ln.ProductID)
		}
		if err != nil {
			return nil, err
		}

		if p.Stock < ln.Quantity {
			return nil, apperr.Newf(apperr.InsufficientStock, "Insufficient stock for product %s", p.Name)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2",
			ln.Quantity, p.ID); err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Quantity:  ln.Quantity,
			UnitPrice: p.Price,
			Name:      p.Name,
		})
		order.TotalAmount += p.Price * int64(ln.Quantity)
	}

	if err := tx.GetContext(ctx, order, `
		INSERT INTO orders (client_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		order.ClientID, order.TotalAmount, order.Status); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.GetContext(ctx, &items[i].ID, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice, items[i].Name); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Products = items
	return order, nil
}

// GetOrderByID retrieves an order with its line snapshots
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &order.Products,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", id); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders retrieves all orders with their line snapshots
func (s *Store) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, orders)
}

// GetOrdersByClient retrieves orders owned by a client
func (s *Store) GetOrdersByClient(ctx context.Context, clientID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE client_id = $1 ORDER BY created_at DESC", clientID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, orders)
}

func (s *Store) attachItems(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	for i := range orders {
		if err := s.db.SelectContext(ctx, &orders[i].Products,
			"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderStatus updates an order's status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, orderID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "Order not found")
	}
	return nil
}
