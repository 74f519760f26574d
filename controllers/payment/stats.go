package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

type TopProduct struct {
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}

type SellerStats struct {
	TotalRevenue   float64      `json:"total_revenue"`   // paid orders only
	PendingRevenue float64      `json:"pending_revenue"` // pending orders
	OrderCount     int64        `json:"order_count"`
	TopProducts    []TopProduct `json:"top_products"`
	TotalStock     int64        `json:"total_stock"`
}

// GET /sellerStats/:seller_email
func SellerStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.Param("seller_email")

		stats := SellerStats{TopProducts: []TopProduct{}}

		if err := sellerRevenue(db, seller, models.PaymentStatusPaid, &stats.TotalRevenue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}
		if err := sellerRevenue(db, seller, models.PaymentStatusPending, &stats.PendingRevenue); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		if err := db.Model(&models.PaymentItem{}).
			Where("seller_email = ?", seller).
			Distinct("payment_id").
			Count(&stats.OrderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		if err := db.Model(&models.PaymentItem{}).
			Select("name, SUM(quantity) AS total_quantity").
			Where("seller_email = ?", seller).
			Group("name").
			Order("total_quantity DESC").
			Limit(3).
			Scan(&stats.TopProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank products"})
			return
		}

		// Stock lives on the catalog side; summed here for the dashboard.
		if err := db.Model(&models.Medicine{}).
			Where("seller_email = ?", seller).
			Select("COALESCE(SUM(stock), 0)").
			Scan(&stats.TotalStock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum stock"})
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

func sellerRevenue(db *gorm.DB, seller string, status models.PaymentStatus, out *float64) error {
	return db.Model(&models.PaymentItem{}).
		Joins("JOIN payments ON payments.id = payment_items.payment_id").
		Where("payment_items.seller_email = ? AND payments.payment_status = ?", seller, status).
		Select("COALESCE(SUM(payment_items.final_unit_price * payment_items.quantity), 0)").
		Scan(out).Error
}
