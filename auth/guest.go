package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /auth/guest
func CreateGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest_" + uuid.NewString()

		token, err := IssueGuestToken(guestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id": guestID,
			"token":    token,
		})
	}
}
