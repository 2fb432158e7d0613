package auth

import (
	"os"
	"time"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userTokenTTL  = 7 * 24 * time.Hour
	guestTokenTTL = 24 * time.Hour
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueUserToken signs a JWT carrying the customer's identity and admin
// flag, used by the Actor middleware on every request.
func IssueUserToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(userTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// IssueGuestToken signs a short-lived JWT for an anonymous shopper so a
// guest cart can be kept server-side before signup.
func IssueGuestToken(guestID string) (string, error) {
	claims := jwt.MapClaims{
		"guest_id": guestID,
		"exp":      time.Now().Add(guestTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}
