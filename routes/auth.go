package routes

import (
	"github.com/12Mina/Baba-Milk-Delivery/auth"
	authControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers identity endpoints. All are public; guest-cart
// merge picks up the caller's guest token when one is presented.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, store authControllers.OTPStore, notify authControllers.Notifier) {
	r.POST("/auth/guest", auth.CreateGuest())

	r.POST("/signup", authControllers.Signup(db))
	r.POST("/login", authControllers.Login(db))
	r.GET("/logout", authControllers.Logout())

	r.POST("/send_otp", authControllers.SendOTP(db, store, notify))
	r.POST("/verify_otp", authControllers.VerifyOTP(db, store))
	r.POST("/resend_otp", authControllers.ResendOTP(store, notify))
}
