package models

import "time"

type Medicine struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Generic         string    `json:"generic"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	Company         string    `json:"company"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price"`
	DiscountPercent float64   `json:"discount_percent"`
	Stock           int       `json:"stock"`
	CategoryID      uint      `gorm:"index" json:"category_id"`
	SellerEmail     string    `gorm:"index" json:"seller_email"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
