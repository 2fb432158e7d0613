package checkoutControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	cartControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/cart"
	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/12Mina/Baba-Milk-Delivery/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ValidationError collects user-correctable field problems. The submitted
// input is persisted before this is returned, so the caller can re-show the
// form with prior values preserved.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

type DeliveryRequest struct {
	Name    string `json:"delivery_name"`
	Phone   string `json:"delivery_phone"`
	Address string `json:"delivery_address"`
}

// SaveDeliveryInfo validates and stores the delivery step for an actor.
// Invalid submissions are stored as-is (raw phone, partial fields) and a
// ValidationError is returned; valid phones are stored normalized.
func SaveDeliveryInfo(db *gorm.DB, ownerKey string, req DeliveryRequest) (models.DeliveryInfo, error) {
	var messages []string

	phone := strings.TrimSpace(req.Phone)
	address := strings.TrimSpace(req.Address)

	if phone == "" {
		messages = append(messages, "Please provide a delivery phone number.")
	}
	if address == "" {
		messages = append(messages, "Please provide a delivery address.")
	}

	if phone != "" {
		normalized, err := utils.NormalizePhone(phone, utils.CountryPrefix())
		if err != nil {
			messages = append(messages, "Please enter a valid phone number (digits only, at least 9 digits, optional '+').")
		} else {
			phone = normalized
		}
	}

	info := models.DeliveryInfo{
		OwnerKey:  ownerKey,
		Name:      strings.TrimSpace(req.Name),
		Phone:     phone,
		Address:   address,
		UpdatedAt: time.Now(),
	}
	if err := upsertDeliveryInfo(db, &info); err != nil {
		return info, err
	}

	if len(messages) > 0 {
		return info, &ValidationError{Messages: messages}
	}
	return info, nil
}

func upsertDeliveryInfo(db *gorm.DB, info *models.DeliveryInfo) error {
	var existing models.DeliveryInfo
	err := db.Where("owner_key = ?", info.OwnerKey).First(&existing).Error
	if err == nil {
		info.ID = existing.ID
		return db.Save(info).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(info).Error
}

// POST /checkout_delivery
func CheckoutDelivery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		var req DeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": []string{"Invalid input: " + err.Error()}})
			return
		}

		info, err := SaveDeliveryInfo(db, ownerKey, req)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success":       false,
					"errors":        verr.Messages,
					"delivery_info": deliveryView(info),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "errors": []string{"Failed to save delivery info."}})
			return
		}

		items, err := cartControllers.Items(db, ownerKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "errors": []string{"Failed to read cart."}})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":       false,
				"errors":        []string{"Your cart is empty. Please add items before checking out."},
				"delivery_info": deliveryView(info),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"delivery_info": deliveryView(info),
			"total_amount":  cartControllers.Total(items),
		})
	}
}

// GET /payment
func GetPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerKey := middleware.GetActor(c).CartKey()

		var info models.DeliveryInfo
		if err := db.Where("owner_key = ?", ownerKey).First(&info).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Checkout session expired. Please order again."})
			return
		}

		items, err := cartControllers.Items(db, ownerKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read cart."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"delivery_info": deliveryView(info),
			"cart_items":    items,
			"total_amount":  cartControllers.Total(items),
			"payment_methods": []string{
				models.PaymentCashOnDelivery,
				models.PaymentTelebirr,
				models.PaymentCBEBirr,
			},
		})
	}
}

func deliveryView(info models.DeliveryInfo) gin.H {
	return gin.H{
		"name":    info.Name,
		"phone":   info.Phone,
		"address": info.Address,
	}
}
