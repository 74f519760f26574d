package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserEmail string     `gorm:"uniqueIndex" json:"user_email"`                              // Enforces ONE cart per user
	Items     []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Cascade delete lines if cart is deleted
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartLine struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CartID          uint      `gorm:"index:idx_cart_medicine,unique" json:"-"`
	MedicineID      uint      `gorm:"index:idx_cart_medicine,unique" json:"medicine_id"`
	Name            string    `json:"name"`
	Image           string    `json:"image"`
	UnitPrice       float64   `json:"unit_price"`
	DiscountPercent float64   `json:"discount_percent"`
	FinalUnitPrice  float64   `json:"final_unit_price"` // derived at merge time, rounded to cents
	SellerEmail     string    `json:"seller_email"`
	Quantity        int       `json:"quantity"`
	AddedAt         time.Time `json:"added_at"`
}
