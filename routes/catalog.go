package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	medicineControllers "github.com/emonpappu17/mediBazaar-server-ass/controllers/medicine"
	"github.com/emonpappu17/mediBazaar-server-ass/middleware"
	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

// SetupCatalogRoutes registers storefront browsing plus the seller-side
// catalog management endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/medicines", medicineControllers.GetMedicines(db))
	r.GET("/medicines/:id", medicineControllers.GetMedicineByID(db))
	r.GET("/categories", medicineControllers.GetCategories(db))
	r.GET("/advertisements", medicineControllers.GetApprovedAdvertisements(db))

	seller := r.Group("/seller")
	seller.Use(middleware.ValidateToken, middleware.RequireRoles(models.RoleSeller, models.RoleAdmin))
	{
		seller.POST("/medicines", medicineControllers.CreateMedicine(db))
		seller.PUT("/medicines/:id", medicineControllers.UpdateMedicine(db))
		seller.DELETE("/medicines/:id", medicineControllers.DeleteMedicine(db))
		seller.POST("/advertisements", medicineControllers.CreateAdvertisement(db))
	}
}
