package models

import "time"

// Event types
const (
	EventTypeOrderPlaced          = "ORDER_PLACED"
	EventTypeOrderStatusChanged   = "ORDER_STATUS_CHANGED"
	EventTypeProductUpdated       = "PRODUCT_UPDATED"
	EventTypeTransactionCompleted = "TRANSACTION_COMPLETED"
	EventTypeTransactionRefunded  = "TRANSACTION_REFUNDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published when an order is created and stock reserved
type OrderPlacedEvent struct {
	BaseEvent
	OrderID     int64           `json:"order_id"`
	ClientID    int64           `json:"client_id"`
	TotalAmount int64           `json:"total_amount"`
	Items       []OrderItemData `json:"items"`
}

// OrderStatusChangedEvent published when an admin changes order status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   int64  `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// ProductUpdatedEvent published when a product is created or modified
type ProductUpdatedEvent struct {
	BaseEvent
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
	Deleted   bool  `json:"deleted,omitempty"`
}

// TransactionCompletedEvent published when a transaction is recorded
type TransactionCompletedEvent struct {
	BaseEvent
	TransactionID int64 `json:"transaction_id"`
	OrderID       int64 `json:"order_id"`
	ClientID      int64 `json:"client_id"`
	Amount        int64 `json:"amount"`
}

// TransactionRefundedEvent published when an admin refunds a transaction
type TransactionRefundedEvent struct {
	BaseEvent
	TransactionID int64 `json:"transaction_id"`
	OrderID       int64 `json:"order_id"`
	Amount        int64 `json:"amount"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}
