package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/auth"
	"github.com/emonpappu17/mediBazaar-server-ass/middleware"
)

// SetupAuthRoutes registers registration, login and identity lookup.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.GET("/me", middleware.ValidateToken, auth.Me(db))
	}
}
