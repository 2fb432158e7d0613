package routes

import (
	orderControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/order"
	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the admin order board. Admin access is the
// is_admin claim on the login token.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin)
	{
		adminGroup.GET("/orders", orderControllers.GetAllOrders(db))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocket)
	}

	// Status mutation keeps its legacy path for the dashboard frontend.
	r.POST("/update_order_status", middleware.RequireAdmin, orderControllers.UpdateOrderStatus(db, orderControllers.Broadcast))
}
