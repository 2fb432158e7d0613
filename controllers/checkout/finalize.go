package checkoutControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/12Mina/Baba-Milk-Delivery/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCheckoutIncomplete   = errors.New("checkout information incomplete")
)

// ProductUnavailableError names the cart item whose product vanished from
// the catalog between add-to-cart and finalize. The whole checkout fails.
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %q is no longer available", e.Name)
}

type FinalizeRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	PaymentPhone  string `json:"payment_phone"`
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder converts the actor's cart into a durable order. The total is
// recomputed from freshly fetched catalog prices; the cart's snapshot total
// and anything client-supplied are ignored. Order, items and cart clearing
// commit in one transaction; on any failure nothing is written and the cart
// is left intact so the customer can retry.
func PlaceOrder(db *gorm.DB, ownerKey string, userID *uint, req FinalizeRequest) (*models.Order, error) {
	var info models.DeliveryInfo
	if err := db.Where("owner_key = ?", ownerKey).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckoutIncomplete
		}
		return nil, err
	}
	if info.Phone == "" || info.Address == "" {
		return nil, ErrCheckoutIncomplete
	}

	status := models.OrderStatusPlaced
	paymentDetails := "{}"
	switch req.PaymentMethod {
	case models.PaymentCashOnDelivery:
		// no extra data
	case models.PaymentTelebirr, models.PaymentCBEBirr:
		phone, err := utils.NormalizePhone(req.PaymentPhone, utils.CountryPrefix())
		if err != nil {
			return nil, &ValidationError{Messages: []string{
				fmt.Sprintf("Please provide a valid %s phone number.", req.PaymentMethod),
			}}
		}
		data, err := json.Marshal(map[string]string{"phone": phone})
		if err != nil {
			return nil, err
		}
		paymentDetails = string(data)
		if req.PaymentMethod == models.PaymentTelebirr {
			status = models.OrderStatusPendingTelebirr
		} else {
			status = models.OrderStatusPendingCBEBirr
		}
	default:
		return nil, ErrInvalidPaymentMethod
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("owner_key = ?", ownerKey).Order("added_at ASC, id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		var orderItems []models.OrderItem
		for _, item := range items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductUnavailableError{Name: item.ProductName}
				}
				return err
			}

			total += product.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        item.Quantity,
				PriceAtPurchase: product.Price,
			})
		}

		order = models.Order{
			UserID:          userID,
			OrderRef:        generateOrderRef(),
			Items:           orderItems,
			TotalAmount:     total,
			DeliveryName:    info.Name,
			DeliveryAddress: info.Address,
			DeliveryPhone:   info.Phone,
			PaymentMethod:   req.PaymentMethod,
			PaymentDetails:  paymentDetails,
			Status:          status,
			OrderDate:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("owner_key = ?", ownerKey).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_key = ?", ownerKey).Delete(&models.DeliveryInfo{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /finalize_order
func FinalizeOrder(db *gorm.DB, broadcast func(event string, order models.Order)) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.GetActor(c)
		ownerKey := actor.CartKey()

		var userID *uint
		if actor.Authenticated() {
			id := actor.UserID
			userID = &id
		}

		var req FinalizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please select a valid payment method."})
			return
		}

		order, err := PlaceOrder(db, ownerKey, userID, req)
		if err != nil {
			status, message := finalizeErrorResponse(err)
			c.JSON(status, gin.H{"success": false, "message": message})
			return
		}

		if broadcast != nil {
			broadcast("order_placed", *order)
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order placed successfully! Check your dashboard for details.",
			"order":   order,
		})
	}
}

func finalizeErrorResponse(err error) (int, string) {
	var verr *ValidationError
	var unavailable *ProductUnavailableError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest, "Your cart is empty. Please add items before checking out."
	case errors.Is(err, ErrCheckoutIncomplete):
		return http.StatusBadRequest, "Checkout information incomplete. Please start from the cart."
	case errors.Is(err, ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "Please select a valid payment method."
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.As(err, &unavailable):
		return http.StatusConflict, fmt.Sprintf("Product %s is no longer available.", unavailable.Name)
	default:
		return http.StatusInternalServerError, "An error occurred while placing your order. Please try again."
	}
}
