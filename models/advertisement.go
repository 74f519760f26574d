package models

import "time"

type Advertisement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SellerEmail  string    `gorm:"index" json:"seller_email"`
	MedicineName string    `json:"medicine_name"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	Approved     bool      `gorm:"default:false" json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}
