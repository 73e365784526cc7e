package service

import (
	"context"

	"ecommerce-api/internal/apperr"
	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/util"

	"go.uber.org/zap"
)

// CommentStore is the storage surface comment moderation needs.
type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	GetApprovedCommentsByProduct(ctx context.Context, productID int64) ([]models.Comment, error)
	ApproveComment(ctx context.Context, id int64) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

// CommentService handles product reviews with a simple approved flag.
type CommentService struct {
	store  CommentStore
	logger *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{
		store:  store,
		logger: util.NamedLogger("comments"),
	}
}

// CreateComment records an unapproved review against an existing product.
func (s *CommentService) CreateComment(ctx context.Context, principal auth.Principal, productID int64, rating int, content string) (*models.Comment, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.New(apperr.InvalidArgument, "Rating must be between 1 and 5")
	}
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Comment text is required")
	}

	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ProductID: productID,
		ClientID:  principal.ID,
		Rating:    rating,
		Content:   content,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("product_id", productID))
	return comment, nil
}

// ListComments returns the approved comments for a product. Public.
func (s *CommentService) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	return s.store.GetApprovedCommentsByProduct(ctx, productID)
}

// ApproveComment publishes a review. Admin-only.
func (s *CommentService) ApproveComment(ctx context.Context, principal auth.Principal, commentID int64) (*models.Comment, error) {
	if !principal.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	return s.store.ApproveComment(ctx, commentID)
}

// DeleteComment removes a review. Admin-only.
func (s *CommentService) DeleteComment(ctx context.Context, principal auth.Principal, commentID int64) error {
	if !principal.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Authorization denied")
	}
	return s.store.DeleteComment(ctx, commentID)
}
