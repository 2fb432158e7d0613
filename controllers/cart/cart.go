package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("item not in cart")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// AddItem adds delta units of a product to the actor's cart, snapshotting
// the product's current name, price and image on first add.
func AddItem(db *gorm.DB, ownerKey string, productID uint, delta int) error {
	if delta < 1 {
		return ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	var item models.CartItem
	err := db.Where("owner_key = ? AND product_id = ?", ownerKey, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			OwnerKey:     ownerKey,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			ProductImage: product.ImagePath,
			Quantity:     delta,
			AddedAt:      time.Now(),
		}
		return db.Create(&item).Error
	}
	if err != nil {
		return err
	}

	item.Quantity += delta
	return db.Save(&item).Error
}

// SetQuantity sets an entry to an exact quantity. Zero deletes the entry;
// an entry is never stored with quantity zero.
func SetQuantity(db *gorm.DB, ownerKey string, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	var item models.CartItem
	if err := db.Where("owner_key = ? AND product_id = ?", ownerKey, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if quantity == 0 {
		return db.Delete(&item).Error
	}
	item.Quantity = quantity
	return db.Save(&item).Error
}

// RemoveItem deletes a cart entry outright.
func RemoveItem(db *gorm.DB, ownerKey string, productID uint) error {
	result := db.Where("owner_key = ? AND product_id = ?", ownerKey, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Items returns the actor's cart entries in insertion order.
func Items(db *gorm.DB, ownerKey string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Where("owner_key = ?", ownerKey).Order("added_at ASC, id ASC").Find(&items).Error
	return items, err
}

// Total sums price x quantity over the snapshotted prices. This is the
// display total only; the finalize step recomputes from live catalog prices.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ProductPrice * float64(item.Quantity)
	}
	return total
}

// TotalQuantity returns the summed quantity across all entries.
func TotalQuantity(db *gorm.DB, ownerKey string) (int, error) {
	var count int
	err := db.Model(&models.CartItem{}).
		Where("owner_key = ?", ownerKey).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	return count, err
}

// Clear deletes every entry for the actor.
func Clear(db *gorm.DB, ownerKey string) error {
	return db.Where("owner_key = ?", ownerKey).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

type addToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type updateQuantityRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required"`
}

type removeFromCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func cartErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondWithCount(c *gin.Context, db *gorm.DB, ownerKey, message string) {
	count, err := TotalQuantity(db, ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error reading cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "cart_count": count})
}

// POST /add_to_cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		if err := AddItem(db, ownerKey, req.ProductID, req.Quantity); err != nil {
			status := cartErrorStatus(err)
			message := "Error adding to cart."
			if status != http.StatusInternalServerError {
				message = err.Error()
			}
			c.JSON(status, gin.H{"success": false, "message": message})
			return
		}
		respondWithCount(c, db, ownerKey, "Added to cart.")
	}
}

// POST /update_cart_quantity
func UpdateCartQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quantity."})
			return
		}

		if err := SetQuantity(db, ownerKey, req.ProductID, *req.Quantity); err != nil {
			status := cartErrorStatus(err)
			message := "Error updating cart."
			if status != http.StatusInternalServerError {
				message = err.Error()
			}
			c.JSON(status, gin.H{"success": false, "message": message})
			return
		}

		message := fmt.Sprintf("Updated quantity to %d.", *req.Quantity)
		if *req.Quantity == 0 {
			message = "Removed item from cart."
		}
		respondWithCount(c, db, ownerKey, message)
	}
}

// POST /remove_from_cart
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		var req removeFromCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		if err := RemoveItem(db, ownerKey, req.ProductID); err != nil {
			status := cartErrorStatus(err)
			message := "Error removing item."
			if status != http.StatusInternalServerError {
				message = err.Error()
			}
			c.JSON(status, gin.H{"success": false, "message": message})
			return
		}
		respondWithCount(c, db, ownerKey, "Item removed from cart.")
	}
}

// GET /cart/items
func GetCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		items, err := Items(db, ownerKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart_items": items,
			"total":      Total(items),
		})
	}
}

// GET /cart/total_quantity
func GetCartCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		count, err := TotalQuantity(db, ownerKey)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"count": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
