package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

type CartLineInput struct {
	MedicineID      uint     `json:"medicine_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Image           string   `json:"image"`
	UnitPrice       *float64 `json:"unit_price" binding:"required,gte=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"required,gte=0,lte=100"`
	SellerEmail     string   `json:"seller_email" binding:"required"`
	Quantity        int      `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	MedicineID uint `json:"medicine_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// POST /cart
//
// Merges a line into the caller's cart: repeat adds of the same medicine
// accumulate quantity, while the pricing fields are overwritten from the
// request (last write wins on price, additive on quantity).
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")

		var input CartLineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		defer lockUser(email)()

		now := time.Now()

		var cart models.Cart
		err := db.Preload("Items").Where("user_email = ?", email).First(&cart).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
			cart = models.Cart{UserEmail: email, CreatedAt: now, UpdatedAt: now}
			if err := db.Create(&cart).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
				return
			}
		}

		// Existing line for this medicine?
		for i := range cart.Items {
			if cart.Items[i].MedicineID != input.MedicineID {
				continue
			}
			line := &cart.Items[i]
			line.Quantity += input.Quantity
			line.Name = input.Name
			line.Image = input.Image
			line.UnitPrice = *input.UnitPrice
			line.DiscountPercent = *input.DiscountPercent
			line.FinalUnitPrice = finalUnitPrice(*input.UnitPrice, *input.DiscountPercent)
			line.SellerEmail = input.SellerEmail
			line.AddedAt = now

			if err := db.Save(line).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart line"})
				return
			}
			touchCart(db, cart.CartID, now)
			c.JSON(http.StatusOK, line)
			return
		}

		line := models.CartLine{
			CartID:          cart.CartID,
			MedicineID:      input.MedicineID,
			Name:            input.Name,
			Image:           input.Image,
			UnitPrice:       *input.UnitPrice,
			DiscountPercent: *input.DiscountPercent,
			FinalUnitPrice:  finalUnitPrice(*input.UnitPrice, *input.DiscountPercent),
			SellerEmail:     input.SellerEmail,
			Quantity:        input.Quantity,
			AddedAt:         now,
		}
		if err := db.Create(&line).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add cart line"})
			return
		}
		touchCart(db, cart.CartID, now)
		c.JSON(http.StatusCreated, line)
	}
}

// PATCH /cart
//
// Overwrites (does not add to) a line's quantity.
func UpdateCartQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
			return
		}

		defer lockUser(email)()

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		now := time.Now()
		result := db.Model(&models.CartLine{}).
			Where("cart_id = ? AND medicine_id = ?", cart.CartID, input.MedicineID).
			Updates(map[string]interface{}{"quantity": input.Quantity, "added_at": now})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}

		touchCart(db, cart.CartID, now)
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
	}
}

// GET /cart
//
// An absent cart is a normal empty result, not an error.
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")

		var cart models.Cart
		err := db.Preload("Items").Where("user_email = ?", email).First(&cart).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := cart.Items
		if items == nil {
			items = []models.CartLine{}
		}
		totalPrice, totalQuantity := cartTotals(items)

		c.JSON(http.StatusOK, gin.H{
			"items":          items,
			"total_price":    totalPrice,
			"total_quantity": totalQuantity,
		})
	}
}

// DELETE /cart/:medicine_id  (idempotent)
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")
		medicineID := c.Param("medicine_id")

		defer lockUser(email)()

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ? AND medicine_id = ?", cart.CartID, medicineID).
			Delete(&models.CartLine{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart line"})
			return
		}

		touchCart(db, cart.CartID, time.Now())
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /cart  (idempotent)
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")

		defer lockUser(email)()

		if err := ClearCartByEmail(db, email); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// ClearCartByEmail deletes the user's cart and its lines. Clearing an
// absent cart is a no-op. Also used by checkout after an order is recorded.
func ClearCartByEmail(db *gorm.DB, email string) error {
	var cart models.Cart
	if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartLine{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Cart{}, cart.CartID).Error
}

func touchCart(db *gorm.DB, cartID uint, now time.Time) {
	if err := db.Model(&models.Cart{}).Where("cart_id = ?", cartID).
		Update("updated_at", now).Error; err != nil {
		log.Warn().Err(err).Uint("cart_id", cartID).Msg("failed to refresh cart timestamp")
	}
}
