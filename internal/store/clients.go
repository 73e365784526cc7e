package store

import (
	"context"
	"database/sql"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/models"
)

// CreateClient inserts a new client account
func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (name, email, password_hash, shipping_address, billing_address, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, c, query,
		c.Name, c.Email, c.PasswordHash, c.ShippingAddress, c.BillingAddress, c.Role)
}

// GetClientByID retrieves a client by ID
func (s *Store) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	err := s.db.GetContext(ctx, &c, "SELECT * FROM clients WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "Client not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetClientByEmail retrieves a client by email, or nil if absent
func (s *Store) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var c models.Client
	err := s.db.GetContext(ctx, &c, "SELECT * FROM clients WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetClients retrieves all clients
func (s *Store) GetClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.SelectContext(ctx, &clients, "SELECT * FROM clients ORDER BY id")
	return clients, err
}

// UpdateClient updates a client's profile fields
func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE clients
		SET name = $1, email = $2, shipping_address = $3, billing_address = $4
		WHERE id = $5`,
		c.Name, c.Email, c.ShippingAddress, c.BillingAddress, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "Client not found")
	}
	return nil
}

// DeleteClient removes a client account
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "Client not found")
	}
	return nil
}
