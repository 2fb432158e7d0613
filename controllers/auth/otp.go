package authControllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OTP requests demand full international form up front; the normalization
// applied to delivery phones is not offered here.
var otpPhonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type ResendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// POST /send_otp
func SendOTP(db *gorm.DB, store OTPStore, notify Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number is required."})
			return
		}

		phone := strings.TrimSpace(req.Phone)
		if !otpPhonePattern.MatchString(phone) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Please enter a valid international phone number (e.g., +251912345678).",
			})
			return
		}

		action := OTPActionLogin
		err := db.Where("phone = ?", phone).First(&models.User{}).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			action = OTPActionSignup
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP. Please try again."})
			return
		}

		name := strings.TrimSpace(req.Name)
		if action == OTPActionSignup && name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Full name is required for signup."})
			return
		}

		otp := PendingOTP{
			Code:     GenerateOTP(6),
			Name:     name,
			Action:   action,
			IssuedAt: time.Now(),
		}
		if err := store.Put(c.Request.Context(), phone, otp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP. Please try again."})
			return
		}

		if err := notify.Send(phone, fmt.Sprintf("Your Baba Milk verification code is: %s", otp.Code)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send OTP. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "An OTP has been sent to " + phone + ".",
			"action":  action,
		})
	}
}

// POST /verify_otp
func VerifyOTP(db *gorm.DB, store OTPStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone and OTP are required."})
			return
		}

		phone := strings.TrimSpace(req.Phone)
		pending, ok, err := store.Get(c.Request.Context(), phone)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification failed. Please try again."})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Your OTP has expired or no request was found. Please request a new one.",
			})
			return
		}
		if strings.TrimSpace(req.OTP) != pending.Code {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid OTP. Please try again."})
			return
		}

		var user models.User
		err = db.Where("phone = ?", phone).First(&user).Error
		switch pending.Action {
		case OTPActionSignup:
			if err == nil {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Account already exists. Please log in."})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification failed. Please try again."})
				return
			}
			// First-OTP-verification signup: the credential is derived from
			// the verified code until the customer sets a password.
			hash, err := bcrypt.GenerateFromPassword([]byte(pending.Code), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification failed. Please try again."})
				return
			}
			user = models.User{
				Name:         pending.Name,
				Phone:        phone,
				PasswordHash: string(hash),
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Signup failed. Please try again."})
				return
			}
		case OTPActionLogin:
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No account found for this phone number."})
				return
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing verification data. Please try again."})
			return
		}

		store.Delete(c.Request.Context(), phone)

		message := "Welcome back, " + user.Name + "!"
		if pending.Action == OTPActionSignup {
			message = "Account created successfully!"
		}
		loginSuccess(c, db, user, message)
	}
}

// POST /resend_otp
func ResendOTP(store OTPStore, notify Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number is required."})
			return
		}

		phone := strings.TrimSpace(req.Phone)
		pending, ok, err := store.Get(c.Request.Context(), phone)
		if err != nil || !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "No active OTP request found. Please start from the account page.",
			})
			return
		}

		pending.Code = GenerateOTP(6)
		pending.IssuedAt = time.Now()
		if err := store.Put(c.Request.Context(), phone, pending); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resend OTP. Please try again."})
			return
		}

		if err := notify.Send(phone, fmt.Sprintf("Your new Baba Milk verification code is: %s", pending.Code)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resend OTP. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "A new OTP has been sent to " + phone + "."})
	}
}
