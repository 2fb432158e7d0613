package models

import "time"

// CartItem is one (product, quantity) pairing awaiting checkout. OwnerKey
// scopes the entry to an actor: "user:<id>" for logged-in customers,
// "guest:<uuid>" for guest sessions. Name, price and image are snapshotted
// from the product at add time for display; the live catalog price is
// re-read when the order is finalized.
type CartItem struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OwnerKey     string `gorm:"index:idx_cart_owner_product,unique;not null" json:"-"`
	ProductID    uint   `gorm:"index:idx_cart_owner_product,unique;not null" json:"product_id"`
	ProductName  string `json:"name"`
	ProductPrice float64 `json:"price"`
	ProductImage string `json:"image_path"`
	Quantity     int    `gorm:"not null" json:"quantity"`
	AddedAt      time.Time `json:"added_at"`
}

// DeliveryInfo holds the checkout delivery step for an actor between the
// delivery-capture and finalize requests. Invalid submissions are stored
// too, so the form can be re-shown with the prior input preserved.
type DeliveryInfo struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerKey  string `gorm:"uniqueIndex;not null"`
	Name      string
	Phone     string
	Address   string
	UpdatedAt time.Time
}
