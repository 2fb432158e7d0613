package routes

import (
	authControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/auth"
	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public catalog,
// auth, storefront and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Every request resolves its Actor (user, guest or anonymous) once.
	r.Use(middleware.ResolveActor)

	otpStore := authControllers.NewOTPStoreFromEnv()
	notifier := authControllers.NewNotifierFromEnv()

	SetupAuthRoutes(r, db, otpStore, notifier)
	SetupStoreRoutes(r, db)
	SetupAdminRoutes(r, db)
}
