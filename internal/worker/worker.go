package worker

import (
	"context"

	"ecommerce-api/internal/broker"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/service"
	"ecommerce-api/internal/util"

	"go.uber.org/zap"
)

// EventStore is the storage surface the cache-sync worker needs.
type EventStore interface {
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) error
}

// CacheSyncWorker keeps the Redis stock view aligned with the database
// by consuming order and product events. It also surfaces low-stock
// conditions through logs and metrics.
type CacheSyncWorker struct {
	consumer          *broker.Consumer
	handler           *broker.EventHandler
	store             EventStore
	cache             service.StockCache
	lowStockThreshold int
	logger            *zap.Logger
}

// NewCacheSyncWorker creates a new cache sync worker
func NewCacheSyncWorker(consumer *broker.Consumer, store EventStore, cache service.StockCache, lowStockThreshold int) *CacheSyncWorker {
	w := &CacheSyncWorker{
		consumer:          consumer,
		store:             store,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
		logger:            util.NamedLogger("cache-sync"),
	}

	handler := broker.NewEventHandler()
	handler.OnOrderPlaced(w.handleOrderPlaced)
	handler.OnProductUpdated(w.handleProductUpdated)
	w.handler = handler

	return w
}

// Start starts the worker
func (w *CacheSyncWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting cache sync worker")
	return w.consumer.StartConsuming(ctx, w.handler.HandleMessage)
}

// Stop stops the worker
func (w *CacheSyncWorker) Stop() error {
	w.logger.Info("Stopping cache sync worker")
	return w.consumer.Close()
}

func (w *CacheSyncWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		return nil
	}

	ids := make([]int64, 0, len(event.Items))
	for _, item := range event.Items {
		ids = append(ids, item.ProductID)
	}

	if err := w.refreshStock(ctx, ids); err != nil {
		return err
	}

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

func (w *CacheSyncWorker) handleProductUpdated(ctx context.Context, event *models.ProductUpdatedEvent) error {
	processed, err := w.store.IsEventProcessed(ctx, event.EventID)
	if err != nil {
		return err
	}
	if processed {
		return nil
	}

	if event.Deleted {
		// Write zero rather than deleting so a stale order path cannot
		// read a missing key as unknown-but-positive.
		if err := w.cache.SetStock(ctx, event.ProductID, 0); err != nil {
			util.CacheSyncTotal.WithLabelValues("error").Inc()
			return err
		}
		util.CacheSyncTotal.WithLabelValues("ok").Inc()
	} else if err := w.refreshStock(ctx, []int64{event.ProductID}); err != nil {
		return err
	}

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

// refreshStock reloads current stock from the database into the cache.
func (w *CacheSyncWorker) refreshStock(ctx context.Context, productIDs []int64) error {
	products, err := w.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		util.CacheSyncTotal.WithLabelValues("error").Inc()
		return err
	}

	for _, p := range products {
		if err := w.cache.SetStock(ctx, p.ID, p.Stock); err != nil {
			util.CacheSyncTotal.WithLabelValues("error").Inc()
			w.logger.Error("Failed to sync stock cache",
				zap.Int64("product_id", p.ID),
				zap.Error(err))
			continue
		}
		util.CacheSyncTotal.WithLabelValues("ok").Inc()

		if p.Stock <= w.lowStockThreshold {
			util.LowStockWarningsTotal.Inc()
			w.logger.Warn("Product stock is low",
				zap.Int64("product_id", p.ID),
				zap.String("name", p.Name),
				zap.Int("stock", p.Stock))
		}
	}
	return nil
}
