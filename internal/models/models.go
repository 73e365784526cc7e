package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Roles assigned to clients
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address is a postal address embedded in a client record.
// Stored as a JSONB column.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB storage
func (a *Address) Scan(src interface{}) error {
	if src == nil {
		*a = Address{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected address column type %T", src)
	}
	return json.Unmarshal(b, a)
}

// Client represents a customer account
type Client struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	PasswordHash    string    `db:"password_hash" json:"-"`
	ShippingAddress Address   `db:"shipping_address" json:"shipping_address"`
	BillingAddress  Address   `db:"billing_address" json:"billing_address"`
	Role            string    `db:"role" json:"role"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Product represents a catalog product. Price is in cents.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Category    string    `db:"category" json:"category,omitempty"`
	Price       int64     `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Order statuses. Any valid status may replace any other; only
// membership in this set is enforced.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in progress"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// ValidOrderStatus reports whether s is a member of the order status set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Order represents a customer order. Immutable after creation except
// for Status. TotalAmount is fixed at creation time and never recomputed.
type Order struct {
	ID          int64       `db:"id" json:"id"`
	ClientID    int64       `db:"client_id" json:"client"`
	Products    []OrderItem `db:"-" json:"products"`
	TotalAmount int64       `db:"total_amount" json:"total_amount"`
	Status      string      `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"order_date"`
}

// OrderItem is a line snapshot taken at order time. UnitPrice and Name
// are the product's price and name at the moment of purchase, so later
// product edits or deletes never alter historical orders.
type OrderItem struct {
	ID        int64    `db:"id" json:"-"`
	OrderID   int64    `db:"order_id" json:"-"`
	ProductID int64    `db:"product_id" json:"product"`
	Quantity  int      `db:"quantity" json:"quantity"`
	UnitPrice int64    `db:"unit_price" json:"price"`
	Name      string   `db:"name" json:"name"`
	Detail    *Product `db:"-" json:"product_detail,omitempty"`
}

// OrderLine is a requested line item before snapshotting.
type OrderLine struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

// Transaction statuses. Transactions are created completed; the only
// legal transition is completed -> refunded.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRefunded  = "refunded"
)

// Transaction records a payment or refund tied to an order.
type Transaction struct {
	ID        int64     `db:"id" json:"id"`
	OrderID   int64     `db:"order_id" json:"order"`
	ClientID  int64     `db:"client_id" json:"client"`
	Amount    int64     `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"transaction_date"`
}

// Comment is a product review awaiting moderation until approved.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product"`
	ClientID  int64     `db:"client_id" json:"client"`
	Rating    int       `db:"rating" json:"rating"`
	Content   string    `db:"content" json:"comment"`
	Approved  bool      `db:"approved" json:"approved"`
	CreatedAt time.Time `db:"created_at" json:"comment_date"`
}

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
