package models

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type User struct {
	Email           string    `gorm:"primaryKey" json:"email"`
	Name            string    `json:"name"`
	PasswordHash    string    `json:"-"`
	Role            Role      `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	SellerRequested bool      `json:"seller_requested"` // set at registration, cleared by admin approval
	Photo           string    `json:"photo"`
	CreatedAt       time.Time `json:"created_at"`
}
