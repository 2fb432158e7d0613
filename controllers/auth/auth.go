package authControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/12Mina/Baba-Milk-Delivery/auth"
	cartControllers "github.com/12Mina/Baba-Milk-Delivery/controllers/cart"
	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/12Mina/Baba-Milk-Delivery/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Name            string `json:"name" binding:"required"`
	LastName        string `json:"lastname"`
	Phone           string `json:"phone" binding:"required"`
	Email           string `json:"email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginSuccess issues a token for the user and folds any guest cart the
// caller was carrying into the user's persisted cart.
func loginSuccess(c *gin.Context, db *gorm.DB, user models.User, message string) {
	actor := middleware.GetActor(c)
	userKey := middleware.Actor{UserID: user.ID}.CartKey()
	if err := cartControllers.MergeGuestCart(db, actor.CartKey(), userKey); err != nil {
		// The login itself succeeded; a failed merge leaves the guest cart
		// behind for the customer to review.
		message += " Unable to merge cart items, please review your cart."
	}

	token, err := auth.IssueUserToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  message,
		"token":    token,
		"user_id":  user.ID,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
	})
}

// POST /signup
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Passwords do not match."})
			return
		}

		phone, err := utils.NormalizePhone(req.Phone, utils.CountryPrefix())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please enter a valid phone number."})
			return
		}

		var existing models.User
		if err := db.Where("phone = ?", phone).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An account with this phone number already exists."})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Signup failed. Please try again."})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Signup failed. Please try again."})
			return
		}

		user := models.User{
			Name:         strings.TrimSpace(req.Name),
			LastName:     strings.TrimSpace(req.LastName),
			Phone:        phone,
			PasswordHash: string(hash),
		}
		if email := strings.TrimSpace(req.Email); email != "" {
			user.Email = &email
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Signup failed. Please try again."})
			return
		}

		loginSuccess(c, db, user, "Account created successfully!")
	}
}

// POST /login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone and password are required."})
			return
		}

		phone, err := utils.NormalizePhone(req.Phone, utils.CountryPrefix())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid phone number or password."})
			return
		}

		var user models.User
		if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid phone number or password."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid phone number or password."})
			return
		}

		loginSuccess(c, db, user, "Welcome back, "+user.Name+"!")
	}
}

// GET /logout
// Tokens are stateless; the client discards its copy.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "You have been logged out."})
	}
}
