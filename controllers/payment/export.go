package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

// GET /admin-payment-management/export
//
// Exports the same filtered set the admin list endpoint returns, as an
// Excel workbook.
func AdminExportPaymentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, err := adminPaymentQuery(db, adminPaymentFilters{
			StartDate:  c.Query("startDate"),
			EndDate:    c.Query("endDate"),
			Status:     c.Query("statusFilter"),
			SearchTerm: c.Query("searchTerm"),
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var payments []models.Payment
		if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Payments")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "BuyerEmail", "BuyerName", "TransactionID", "TotalAmount",
			"PaymentStatus", "PaymentMethod", "AdminApproved", "SellerReceived", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range payments {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.OrderRef)
			row.AddCell().SetValue(p.BuyerEmail)
			row.AddCell().SetValue(p.BuyerName)
			row.AddCell().SetValue(p.TransactionID)
			row.AddCell().SetValue(p.TotalAmount)
			row.AddCell().SetValue(string(p.PaymentStatus))
			row.AddCell().SetValue(p.PaymentMethod)
			row.AddCell().SetValue(p.AdminApproved)
			row.AddCell().SetValue(p.SellerReceived)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=payments.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
