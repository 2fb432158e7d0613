package productControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /products
// Catalog listing, partitioned by category for the storefront sections.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("category ASC, id ASC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		byCategory := make(map[string][]models.Product)
		for _, p := range products {
			byCategory[p.Category] = append(byCategory[p.Category], p)
		}
		c.JSON(http.StatusOK, gin.H{"products": byCategory})
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /search_products?query=
// Substring match over name and description, case-insensitive.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("query"))
		if query == "" {
			c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
			return
		}

		pattern := "%" + strings.ToLower(query) + "%"
		var products []models.Product
		if err := db.
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
