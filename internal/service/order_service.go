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

// OrderStore is the storage surface the order workflow needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, clientID int64, lines []models.OrderLine) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByClient(ctx context.Context, clientID int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
}

// EventPublisher publishes domain events. Publish failures are logged
// and never fail the operation that produced them.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishProductUpdated(ctx context.Context, event *models.ProductUpdatedEvent) error
	PublishTransactionCompleted(ctx context.Context, event *models.TransactionCompletedEvent) error
	PublishTransactionRefunded(ctx context.Context, event *models.TransactionRefundedEvent) error
}

// StockCache is the best-effort cached stock view.
type StockCache interface {
	DeductStock(ctx context.Context, productID int64, quantity int) error
	SetStock(ctx context.Context, productID int64, stock int) error
}

// OrderService implements the order placement workflow
type OrderService struct {
	store  OrderStore
	cache  StockCache
	events EventPublisher
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, cache StockCache, events EventPublisher) *OrderService {
	return &OrderService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.NamedLogger("orders"),
	}
}

// PlaceOrder validates the requested lines, snapshots prices and names,
// decrements stock and persists the order as one atomic unit of work.
// The recorded total equals the sum of unit price times quantity at the
// moment of the call.
func (s *OrderService) PlaceOrder(ctx context.Context, principal auth.Principal, lines []models.OrderLine) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderPlacementLatency.Observe(time.Since(start).Seconds())
	}()

	if len(lines) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_order").Inc()
		return nil, apperr.New(apperr.InvalidArgument, "Order must contain at least one product")
	}
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			util.OrdersFailedTotal.WithLabelValues("invalid_quantity").Inc()
			return nil, apperr.Newf(apperr.InvalidArgument, "Invalid quantity %d for product %d", ln.Quantity, ln.ProductID)
		}
	}

	order, err := s.store.CreateOrder(ctx, principal.ID, lines)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues(apperr.KindOf(err).String()).Inc()
		return nil, err
	}

	util.OrdersPlacedTotal.Inc()
	for _, item := range order.Products {
		util.StockDecrementedTotal.Add(float64(item.Quantity))
	}

	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("client_id", order.ClientID),
		zap.Int64("total_amount", order.TotalAmount))

	// Cache deduction and event publication are best-effort after
	// commit; the worker resyncs the cache from the database.
	items := make([]models.OrderItemData, 0, len(order.Products))
	for _, item := range order.Products {
		if err := s.cache.DeductStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Warn("Failed to deduct cached stock",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
		}
		items = append(items, models.OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:     order.ID,
		ClientID:    order.ClientID,
		TotalAmount: order.TotalAmount,
		Items:       items,
	}
	if err := s.events.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}

	return order, nil
}

// GetOrder returns an order to its owner or an admin, with line items
// resolved to current product detail where the product still exists.
func (s *OrderService) GetOrder(ctx context.Context, principal auth.Principal, orderID int64) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !principal.CanAccess(order.ClientID) {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}

	s.resolveProductDetail(ctx, order.Products)
	return order, nil
}

// ListOrders returns all orders for admins, or the principal's own.
func (s *OrderService) ListOrders(ctx context.Context, principal auth.Principal) ([]models.Order, error) {
	if principal.IsAdmin() {
		return s.store.GetOrders(ctx)
	}
	return s.store.GetOrdersByClient(ctx, principal.ID)
}

// SetOrderStatus updates an order's status. Admin-only; the service
// re-checks the role even though the route is admin-gated. Only
// membership in the status set is enforced, not an ordering.
func (s *OrderService) SetOrderStatus(ctx context.Context, principal auth.Principal, orderID int64, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.SetOrderStatus")
	defer span.End()

	if !principal.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Authorization denied")
	}
	if !models.ValidOrderStatus(status) {
		return nil, apperr.Newf(apperr.InvalidArgument, "Unknown order status %q", status)
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("old_status", oldStatus),
		zap.String("new_status", status))

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: status,
	}
	if err := s.events.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	return order, nil
}

// resolveProductDetail attaches current product records to line items
// for display. Deleted products simply have no detail; the snapshot in
// the line item is authoritative for price and name.
func (s *OrderService) resolveProductDetail(ctx context.Context, items []models.OrderItem) {
	if len(items) == 0 {
		return
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("Failed to resolve product detail", zap.Error(err))
		return
	}

	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range items {
		items[i].Detail = byID[items[i].ProductID]
	}
}
