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

// ProductStore is the storage surface catalog management needs.
type ProductStore interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductService handles catalog CRUD. Mutations are admin-only and
// keep the stock cache and downstream consumers informed.
type ProductService struct {
	store  ProductStore
	cache  StockCache
	events EventPublisher
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore, cache StockCache, events EventPublisher) *ProductService {
	return &ProductService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.NamedLogger("products"),
	}
}

// ProductInput carries product fields for create/update.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       int64
	Stock       int
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return apperr.New(apperr.InvalidArgument, "Product name is required")
	}
	if in.Price < 0 {
		return apperr.New(apperr.InvalidArgument, "Product price must not be negative")
	}
	if in.Stock < 0 {
		return apperr.New(apperr.InvalidArgument, "Product stock must not be negative")
	}
	return nil
}

// CreateProduct adds a product to the catalog. Admin-only.
func (s *ProductService) CreateProduct(ctx context.Context, principal auth.Principal, in ProductInput) (*models.Product, error) {
	if !principal.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", zap.Int64("product_id", product.ID))
	s.syncCacheAndPublish(ctx, product.ID, product.Stock, false)
	return product, nil
}

// UpdateProduct edits a product. Admin-only. Historical orders keep
// their snapshots and are unaffected.
func (s *ProductService) UpdateProduct(ctx context.Context, principal auth.Principal, id int64, in ProductInput) (*models.Product, error) {
	if !principal.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Category = in.Category
	product.Price = in.Price
	product.Stock = in.Stock

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.syncCacheAndPublish(ctx, product.ID, product.Stock, false)
	return product, nil
}

// DeleteProduct removes a product from the catalog. Admin-only.
func (s *ProductService) DeleteProduct(ctx context.Context, principal auth.Principal, id int64) error {
	if !principal.IsAdmin() {
		return apperr.New(apperr.Forbidden, "Authorization denied")
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.syncCacheAndPublish(ctx, id, 0, true)
	return nil
}

// GetProduct retrieves a product. Public.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// ListProducts retrieves the catalog. Public.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.GetProducts(ctx)
}

func (s *ProductService) syncCacheAndPublish(ctx context.Context, productID int64, stock int, deleted bool) {
	if err := s.cache.SetStock(ctx, productID, stock); err != nil {
		s.logger.Warn("Failed to sync stock cache",
			zap.Int64("product_id", productID),
			zap.Error(err))
	}

	event := &models.ProductUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductUpdated,
			Timestamp: time.Now(),
		},
		ProductID: productID,
		Stock:     stock,
		Deleted:   deleted,
	}
	if err := s.events.PublishProductUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductUpdated event", zap.Error(err))
	}
}
