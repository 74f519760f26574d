package paymentControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	cartControllers "github.com/emonpappu17/mediBazaar-server-ass/controllers/cart"
	"github.com/emonpappu17/mediBazaar-server-ass/gateway"
	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

// -------- Request Structs --------

type CreateIntentRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type PaymentItemInput struct {
	MedicineID      uint     `json:"medicine_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Image           string   `json:"image"`
	UnitPrice       *float64 `json:"unit_price" binding:"required,gte=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"required,gte=0,lte=100"`
	FinalUnitPrice  *float64 `json:"final_unit_price" binding:"required,gte=0"`
	SellerEmail     string   `json:"seller_email" binding:"required"`
	Quantity        int      `json:"quantity" binding:"required,min=1"`
}

type RecordPaymentRequest struct {
	BuyerName       string             `json:"buyer_name" binding:"required"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	Items           []PaymentItemInput `json:"items" binding:"required,min=1,dive"`
	TotalAmount     *float64           `json:"total_amount" binding:"required,gte=0"`
	TransactionID   string             `json:"transaction_id" binding:"required"`
	PaymentMethod   string             `json:"payment_method"`
}

// generateOrderRef returns a unique human-scannable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Handlers --------

// POST /create-payment-intent
func CreatePaymentIntentHandler(pay *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		intent, err := pay.CreatePaymentIntent(*req.Amount)
		if err != nil {
			if errors.Is(err, gateway.ErrInvalidAmount) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
				return
			}
			log.Error().Err(err).Float64("amount", *req.Amount).Msg("failed to create payment intent")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment intent"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
	}
}

// POST /payments
//
// Records the order. The charge is verified server-side with the provider
// before anything is persisted; the client-supplied transaction reference
// is not trusted on its own. Cart cleanup afterwards is best-effort: if it
// fails the order still stands.
func RecordPaymentHandler(db *gorm.DB, pay *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")

		var req RecordPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := pay.VerifyCharge(req.TransactionID); err != nil {
			log.Warn().Err(err).Str("transaction_id", req.TransactionID).Msg("charge verification failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Charge could not be verified"})
			return
		}

		var existing models.Payment
		if err := db.Where("transaction_id = ?", req.TransactionID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Order already recorded for this transaction"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check transaction"})
			return
		}

		now := time.Now()
		items := make([]models.PaymentItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.PaymentItem{
				MedicineID:      item.MedicineID,
				Name:            item.Name,
				Image:           item.Image,
				UnitPrice:       *item.UnitPrice,
				DiscountPercent: *item.DiscountPercent,
				FinalUnitPrice:  *item.FinalUnitPrice,
				SellerEmail:     item.SellerEmail,
				Quantity:        item.Quantity,
			})
		}

		payment := models.Payment{
			BuyerEmail:      email,
			BuyerName:       req.BuyerName,
			ShippingAddress: req.ShippingAddress,
			Items:           items,
			TotalAmount:     *req.TotalAmount,
			OrderRef:        generateOrderRef(),
			TransactionID:   req.TransactionID,
			PaymentStatus:   models.PaymentStatusPending,
			PaymentMethod:   req.PaymentMethod,
			AdminApproved:   false,
			SellerReceived:  false,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := db.Create(&payment).Error; err != nil {
			log.Error().Err(err).Str("buyer", email).Msg("failed to save payment")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment"})
			return
		}

		if err := cartControllers.ClearCartByEmail(db, email); err != nil {
			log.Warn().Err(err).Str("buyer", email).Msg("failed to clear cart after checkout")
		}

		broadcastPaymentEvent("payment.recorded", payment)
		c.JSON(http.StatusCreated, gin.H{"insertedId": payment.ID})
	}
}

// GET /payments/:transaction_id
func GetPaymentByTransaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactionID := c.Param("transaction_id")

		var payment models.Payment
		if err := db.Preload("Items").Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

// GET /seller-payment/:seller_email
//
// Returns every order containing the seller's lines, with each order's
// items projected down to only that seller's lines. Other sellers' lines
// in the same order are never disclosed.
func SellerStatementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.Param("seller_email")

		role := models.Role(c.GetString("user_role"))
		if role != models.RoleAdmin && c.GetString("user_email") != seller {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your statement"})
			return
		}

		sub := db.Model(&models.PaymentItem{}).Select("payment_id").Where("seller_email = ?", seller)

		var payments []models.Payment
		if err := db.Preload("Items").Where("id IN (?)", sub).
			Order("created_at DESC").Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statement"})
			return
		}

		c.JSON(http.StatusOK, projectSellerItems(payments, seller))
	}
}

// projectSellerItems strips each payment's item list down to the given
// seller's lines. The totals stay order-level; line privacy is what matters.
func projectSellerItems(payments []models.Payment, seller string) []models.Payment {
	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		filtered := make([]models.PaymentItem, 0, len(p.Items))
		for _, item := range p.Items {
			if item.SellerEmail == seller {
				filtered = append(filtered, item)
			}
		}
		p.Items = filtered
		out = append(out, p)
	}
	return out
}

// PATCH /seller-payment/:order_id
//
// Marks funds received by the seller. Never touches payment_status.
func SellerMarkReceivedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")

		result := db.Model(&models.Payment{}).Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"seller_received": true,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment marked as received"})
	}
}

// PATCH /admin-payment-management/:order_id
//
// Admin approval is the sole transition out of pending.
func AdminApprovePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")

		result := db.Model(&models.Payment{}).Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"admin_approved": true,
				"payment_status": models.PaymentStatusPaid,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve payment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}

		var payment models.Payment
		if err := db.Preload("Items").First(&payment, "id = ?", orderID).Error; err == nil {
			broadcastPaymentEvent("payment.approved", payment)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment approved"})
	}
}

// GET /admin-payment-management
func AdminListPaymentsHandler(db *gorm.DB) gin.HandlerFunc {
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
		if err := query.Preload("Items").Order("created_at DESC").Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
			return
		}

		c.JSON(http.StatusOK, payments)
	}
}

// -------- Filters --------

type adminPaymentFilters struct {
	StartDate  string // YYYY-MM-DD, inclusive
	EndDate    string // YYYY-MM-DD, inclusive
	Status     string
	SearchTerm string
}

func adminPaymentQuery(db *gorm.DB, f adminPaymentFilters) (*gorm.DB, error) {
	query := db.Model(&models.Payment{})

	if f.StartDate != "" {
		start, err := time.Parse("2006-01-02", f.StartDate)
		if err != nil {
			return nil, errors.New("invalid startDate, expected YYYY-MM-DD")
		}
		query = query.Where("created_at >= ?", start)
	}
	if f.EndDate != "" {
		end, err := time.Parse("2006-01-02", f.EndDate)
		if err != nil {
			return nil, errors.New("invalid endDate, expected YYYY-MM-DD")
		}
		query = query.Where("created_at < ?", end.Add(24*time.Hour))
	}
	if f.Status != "" {
		query = query.Where("payment_status = ?", f.Status)
	}
	if f.SearchTerm != "" {
		term := "%" + strings.ToLower(f.SearchTerm) + "%"
		sub := db.Model(&models.PaymentItem{}).Select("payment_id").Where("LOWER(name) LIKE ?", term)
		query = query.Where(
			"LOWER(buyer_email) LIKE ? OR LOWER(transaction_id) LIKE ? OR id IN (?)",
			term, term, sub,
		)
	}

	return query, nil
}
