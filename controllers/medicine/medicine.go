package medicineControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

type MedicineInput struct {
	Name            string   `json:"name" binding:"required"`
	Generic         string   `json:"generic"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	Company         string   `json:"company"`
	UnitPrice       *float64 `json:"unit_price" binding:"required,gte=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	Stock           *int     `json:"stock" binding:"omitempty,gte=0"`
	CategoryID      uint     `json:"category_id"`
}

// GET /medicines?page=&limit=&category=&search=
func GetMedicines(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		query := db.Model(&models.Medicine{})
		if category := c.Query("category"); category != "" {
			query = query.Where("category_id = ?", category)
		}
		if search := c.Query("search"); search != "" {
			term := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(generic) LIKE ? OR LOWER(company) LIKE ?", term, term, term)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count medicines"})
			return
		}

		var medicines []models.Medicine
		if err := query.Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medicines"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"medicines": medicines, "total": total, "page": page})
	}
}

// GET /medicines/:id
func GetMedicineByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var medicine models.Medicine
		if err := db.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
			return
		}
		c.JSON(http.StatusOK, medicine)
	}
}

// POST /seller/medicines
func CreateMedicine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.GetString("user_email")

		var input MedicineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		now := time.Now()
		medicine := models.Medicine{
			Name:        input.Name,
			Generic:     input.Generic,
			Description: input.Description,
			Image:       input.Image,
			Company:     input.Company,
			UnitPrice:   *input.UnitPrice,
			CategoryID:  input.CategoryID,
			SellerEmail: seller,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if input.DiscountPercent != nil {
			medicine.DiscountPercent = *input.DiscountPercent
		}
		if input.Stock != nil {
			medicine.Stock = *input.Stock
		}

		if err := db.Create(&medicine).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine"})
			return
		}
		c.JSON(http.StatusCreated, medicine)
	}
}

// PUT /seller/medicines/:id
func UpdateMedicine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.GetString("user_email")
		role := models.Role(c.GetString("user_role"))

		var medicine models.Medicine
		if err := db.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
			return
		}
		if role != models.RoleAdmin && medicine.SellerEmail != seller {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your medicine"})
			return
		}

		var input MedicineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{
			"name":        input.Name,
			"generic":     input.Generic,
			"description": input.Description,
			"image":       input.Image,
			"company":     input.Company,
			"unit_price":  *input.UnitPrice,
			"category_id": input.CategoryID,
			"updated_at":  time.Now(),
		}
		if input.DiscountPercent != nil {
			updates["discount_percent"] = *input.DiscountPercent
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}

		if err := db.Model(&medicine).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medicine"})
			return
		}
		c.JSON(http.StatusOK, medicine)
	}
}

// DELETE /seller/medicines/:id
func DeleteMedicine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := c.GetString("user_email")
		role := models.Role(c.GetString("user_role"))

		var medicine models.Medicine
		if err := db.First(&medicine, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
			return
		}
		if role != models.RoleAdmin && medicine.SellerEmail != seller {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your medicine"})
			return
		}

		if err := db.Delete(&medicine).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medicine"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted"})
	}
}
