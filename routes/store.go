package routes

import (
	cartControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/cart"
	checkoutControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/checkout"
	orderControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/order"
	productControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/product"
	userControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/user"
	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers the storefront: public catalog browsing, the
// cart and checkout for users and guests, and the customer dashboard.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Catalog (public) ────────────────
	r.GET("/", productControllers.GetProducts(db))
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/search_products", productControllers.SearchProducts(db))

	// ──────────────── Cart + Checkout (user or guest) ────────────────
	cartGroup := r.Group("/")
	cartGroup.Use(middleware.RequireCartOwner)
	{
		cartGroup.POST("/add_to_cart", cartControllers.AddToCart(db))
		cartGroup.POST("/update_cart_quantity", cartControllers.UpdateCartQuantity(db))
		cartGroup.POST("/remove_from_cart", cartControllers.RemoveFromCart(db))
		cartGroup.GET("/cart/items", cartControllers.GetCartItems(db))
		cartGroup.GET("/cart/total_quantity", cartControllers.GetCartCount(db))

		cartGroup.POST("/checkout_delivery", checkoutControllers.CheckoutDelivery(db))
		cartGroup.GET("/payment", checkoutControllers.GetPayment(db))
		cartGroup.POST("/finalize_order", checkoutControllers.FinalizeOrder(db, orderControllers.Broadcast))
	}

	// ──────────────── Account (login required) ────────────────
	userGroup := r.Group("/")
	userGroup.Use(middleware.RequireUser)
	{
		userGroup.GET("/dashboard", orderControllers.Dashboard(db))
		userGroup.GET("/me", userControllers.GetProfile(db))
		userGroup.PUT("/me", userControllers.UpdateProfile(db))
	}
}
