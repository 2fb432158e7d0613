package models

// Product categories shown on the storefront.
const (
	CategoryMilk   = "milk"
	CategoryYogurt = "yogurt"
	CategoryCheese = "cheese"
	CategoryButter = "butter"
)

// Product is seeded once and treated as read-only afterwards. Its price is
// the only amount trusted when an order is finalized.
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Category    string  `gorm:"not null;index" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	ImagePath   string  `json:"image_path"`
	Description string  `json:"description"`
}
