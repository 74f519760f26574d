package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/gateway"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pay *gateway.Client) {
	// Public auth + storefront routes (no middleware)
	SetupAuthRoutes(r, db)
	SetupCatalogRoutes(r, db)

	// Cart routes (JWT-protected)
	SetupCartRoutes(r, db)

	// Payment + seller + admin payment management routes
	SetupPaymentRoutes(r, db, pay)

	// Admin routes (JWT + admin role)
	SetupAdminRoutes(r, db)
}
