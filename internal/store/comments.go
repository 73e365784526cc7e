package store

import (
	"context"
	"database/sql"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/models"
)

// CreateComment inserts a new product comment (unapproved)
func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	query := `
		INSERT INTO comments (product_id, client_id, rating, content, approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, c, query,
		c.ProductID, c.ClientID, c.Rating, c.Content, c.Approved)
}

// GetCommentByID retrieves a comment by ID
func (s *Store) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := s.db.GetContext(ctx, &c, "SELECT * FROM comments WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "Comment not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetApprovedCommentsByProduct retrieves approved comments for a product
func (s *Store) GetApprovedCommentsByProduct(ctx context.Context, productID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.SelectContext(ctx, &comments,
		"SELECT * FROM comments WHERE product_id = $1 AND approved ORDER BY created_at DESC", productID)
	return comments, err
}

// ApproveComment marks a comment as approved
func (s *Store) ApproveComment(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := s.db.GetContext(ctx, &c,
		"UPDATE comments SET approved = TRUE WHERE id = $1 RETURNING *", id)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "Comment not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment removes a comment
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "Comment not found")
	}
	return nil
}
