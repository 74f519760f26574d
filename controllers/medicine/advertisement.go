package medicineControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

type AdvertisementInput struct {
	MedicineName string `json:"medicine_name" binding:"required"`
	Image        string `json:"image" binding:"required"`
	Description  string `json:"description"`
}

// GET /advertisements — approved ads for the storefront banner.
func GetApprovedAdvertisements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ads []models.Advertisement
		if err := db.Where("approved = ?", true).Order("created_at DESC").Find(&ads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch advertisements"})
			return
		}
		c.JSON(http.StatusOK, ads)
	}
}

// POST /seller/advertisements
func CreateAdvertisement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.GetString("user_email")

		var input AdvertisementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ad := models.Advertisement{
			SellerEmail:  seller,
			MedicineName: input.MedicineName,
			Image:        input.Image,
			Description:  input.Description,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&ad).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create advertisement"})
			return
		}
		c.JSON(http.StatusCreated, ad)
	}
}

// GET /admin/advertisements — all ads, pending first.
func AdminListAdvertisements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ads []models.Advertisement
		if err := db.Order("approved, created_at DESC").Find(&ads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch advertisements"})
			return
		}
		c.JSON(http.StatusOK, ads)
	}
}

// PATCH /admin/advertisements/:id — toggle approval.
func AdminToggleAdvertisement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ad models.Advertisement
		if err := db.First(&ad, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
			return
		}

		if err := db.Model(&ad).Update("approved", !ad.Approved).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update advertisement"})
			return
		}
		c.JSON(http.StatusOK, ad)
	}
}
