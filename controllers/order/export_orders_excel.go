package orderControllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/12Mina/Baba-Milk-Delivery/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("order_date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "Customer", "DeliveryPhone", "DeliveryAddress",
			"Items", "Total", "PaymentMethod", "Status", "Date",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			customer := o.DeliveryName
			if o.User != nil {
				customer = o.User.Name
			}
			row.AddCell().SetValue(customer)
			row.AddCell().SetValue(o.DeliveryPhone)
			row.AddCell().SetValue(o.DeliveryAddress)

			var lines []string
			for _, item := range o.Items {
				lines = append(lines, fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(lines, ", "))

			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.OrderDate.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
