package userControllers

import (
	"net/http"
	"strings"

	"github.com/12Mina/Baba-Milk-Delivery/middleware"
	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"lastname"`
	Address  *string `json:"address"`
	Email    *string `json:"email"`
}

// GET /me
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.GetActor(c)

		var user models.User
		if err := db.First(&user, actor.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /me
// Address updates here become the prefilled delivery address at checkout.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.GetActor(c)

		var user models.User
		if err := db.First(&user, actor.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.LastName != nil {
			updates["last_name"] = strings.TrimSpace(*req.LastName)
		}
		if req.Address != nil {
			updates["address"] = strings.TrimSpace(*req.Address)
		}
		if req.Email != nil {
			updates["email"] = strings.TrimSpace(*req.Email)
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}
