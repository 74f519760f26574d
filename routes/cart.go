package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/emonpappu17/mediBazaar-server-ass/controllers/cart"
	"github.com/emonpappu17/mediBazaar-server-ass/middleware"
)

// SetupCartRoutes registers the shopping cart endpoints. The cart owner is
// always the verified token identity; no user id is taken from the path.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetUserCart(db))                    // GET /cart
		cartGroup.POST("", cartControllers.AddCartItem(db))                   // POST /cart
		cartGroup.PATCH("", cartControllers.UpdateCartQuantity(db))           // PATCH /cart
		cartGroup.DELETE("/:medicine_id", cartControllers.DeleteCartItem(db)) // DELETE /cart/:medicine_id
		cartGroup.DELETE("", cartControllers.ClearUserCart(db))               // DELETE /cart
	}
}
