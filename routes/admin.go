package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	medicineControllers "github.com/emonpappu17/mediBazaar-server-ass/controllers/medicine"
	userControllers "github.com/emonpappu17/mediBazaar-server-ass/controllers/user"
	"github.com/emonpappu17/mediBazaar-server-ass/middleware"
	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

// SetupAdminRoutes registers the admin console endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateToken, middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", userControllers.GetAllUsers(db))
		admin.GET("/users/pending-sellers", userControllers.ListPendingSellers(db))
		admin.PATCH("/users/:email/role", userControllers.UpdateUserRole(db))

		admin.POST("/categories", medicineControllers.CreateCategory(db))
		admin.PUT("/categories/:id", medicineControllers.UpdateCategory(db))
		admin.DELETE("/categories/:id", medicineControllers.DeleteCategory(db))

		admin.GET("/advertisements", medicineControllers.AdminListAdvertisements(db))
		admin.PATCH("/advertisements/:id", medicineControllers.AdminToggleAdvertisement(db))
	}
}
