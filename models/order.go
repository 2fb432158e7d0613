package models

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusPlaced          OrderStatus = "placed"
	OrderStatusPendingTelebirr OrderStatus = "pending_payment_telebirr"
	OrderStatusPendingCBEBirr  OrderStatus = "pending_payment_cbebirr"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusPacked          OrderStatus = "packed"
	OrderStatusOutForDelivery  OrderStatus = "out_for_delivery"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// Payment methods accepted at checkout. Mobile-money methods leave the
// order in a pending_payment_* status until reconciled manually.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentTelebirr       = "telebirr"
	PaymentCBEBirr        = "cbebirr"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a raw string onto the fixed status allow-list.
// Admins may move an order between any two statuses in the list.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(status) {
	case OrderStatusPlaced,
		OrderStatusPendingTelebirr,
		OrderStatusPendingCBEBirr,
		OrderStatusConfirmed,
		OrderStatusPacked,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return OrderStatus(status), nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// TrackerStatuses are the stages shown on the dashboard progress bar.
var TrackerStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusConfirmed,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// TrackerIndex maps a status to its progress-bar stage. Payment-pending
// statuses display as placed, packed displays as confirmed, and statuses
// outside the tracker (cancelled) return -1.
func (s OrderStatus) TrackerIndex() int {
	switch s {
	case OrderStatusPendingTelebirr, OrderStatusPendingCBEBirr:
		return 0
	case OrderStatusPacked:
		return 1
	}
	for i, status := range TrackerStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

// Order is immutable once placed, except for Status. UserID is nil for
// guest orders. TotalAmount is always recomputed server-side from catalog
// prices at finalize time.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          *uint       `gorm:"index" json:"user_id"`
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderRef        string      `gorm:"uniqueIndex" json:"order_ref"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	DeliveryName    string      `json:"delivery_name"`
	DeliveryAddress string      `gorm:"not null" json:"delivery_address"`
	DeliveryPhone   string      `gorm:"not null" json:"delivery_phone"`
	PaymentMethod   string      `gorm:"not null" json:"payment_method"`
	PaymentDetails  string      `json:"payment_details"` // opaque JSON blob, e.g. {"phone": "+2519..."}
	Status          OrderStatus `gorm:"type:VARCHAR(32);default:'placed'" json:"status"`
	OrderDate       time.Time   `json:"order_date"`
}

// OrderItem carries a historical snapshot of the product at purchase time,
// decoupled from later catalog price changes.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	OrderID         uint    `gorm:"index" json:"order_id"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64 `gorm:"not null" json:"price_at_purchase"`
}
