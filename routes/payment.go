package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/emonpappu17/mediBazaar-server-ass/controllers/payment"
	"github.com/emonpappu17/mediBazaar-server-ass/gateway"
	"github.com/emonpappu17/mediBazaar-server-ass/middleware"
	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, pay *gateway.Client) {
	// Charge-intent creation happens before login state matters client-side.
	r.POST("/create-payment-intent", paymentControllers.CreatePaymentIntentHandler(pay))

	// Seller dashboard stats (public, aggregate only)
	r.GET("/sellerStats/:seller_email", paymentControllers.SellerStatsHandler(db))

	payments := r.Group("/payments")
	payments.Use(middleware.ValidateToken)
	{
		payments.POST("", paymentControllers.RecordPaymentHandler(db, pay))
		payments.GET("/:transaction_id", paymentControllers.GetPaymentByTransaction(db))
	}

	seller := r.Group("/seller-payment")
	seller.Use(middleware.ValidateToken)
	{
		seller.GET("/:seller_email", paymentControllers.SellerStatementHandler(db))
		seller.PATCH("/:order_id",
			middleware.RequireRoles(models.RoleSeller, models.RoleAdmin),
			paymentControllers.SellerMarkReceivedHandler(db))
	}

	admin := r.Group("/admin-payment-management")
	{
		admin.GET("/ws", paymentControllers.PaymentFeedHandler)

		protected := admin.Group("")
		protected.Use(middleware.ValidateToken, middleware.RequireRoles(models.RoleAdmin))
		{
			protected.GET("", paymentControllers.AdminListPaymentsHandler(db))
			protected.GET("/export", paymentControllers.AdminExportPaymentsHandler(db))
			protected.PATCH("/:order_id", paymentControllers.AdminApprovePaymentHandler(db))
		}
	}
}
