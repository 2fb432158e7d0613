package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// SetStatus moves an order to any status within the allow-list. The prior
// status is left untouched when the new one is rejected.
func SetStatus(db *gorm.DB, orderID uint, status string) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	order.Status = newStatus
	return &order, nil
}

type orderView struct {
	models.Order
	TrackerIndex    int                  `json:"tracker_index"`
	TrackerStatuses []models.OrderStatus `json:"tracker_statuses"`
}

func toOrderView(order models.Order) orderView {
	return orderView{
		Order:           order,
		TrackerIndex:    order.Status.TrackerIndex(),
		TrackerStatuses: models.TrackerStatuses,
	}
}

// GET /dashboard
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.GetActor(c)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", actor.UserID).
			Preload("Items").
			Order("order_date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]orderView, 0, len(orders))
		for _, order := range orders {
			views = append(views, toOrderView(order))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views})
	}
}

// GET /admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("order_date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]orderView, 0, len(orders))
		for _, order := range orders {
			views = append(views, toOrderView(order))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views})
	}
}

type updateOrderStatusRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// POST /update_order_status
func UpdateOrderStatus(db *gorm.DB, broadcast func(event string, order models.Order)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_id and status are required"})
			return
		}

		order, err := SetStatus(db, req.OrderID, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidOrderStatus):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			}
			return
		}

		if broadcast != nil {
			broadcast("status_updated", *order)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated to " + strings.ReplaceAll(req.Status, "_", " "),
			"order":   toOrderView(*order),
		})
	}
}
