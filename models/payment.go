package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // recorded, awaiting admin approval
	PaymentStatusPaid    PaymentStatus = "paid"    // approved by admin
)

// Payment is the order record written at checkout. Items is a snapshot of
// the buyer's cart lines at that moment; later catalog changes never touch it.
type Payment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	BuyerEmail      string        `gorm:"index" json:"buyer_email"`
	BuyerName       string        `json:"buyer_name"`
	ShippingAddress string        `json:"shipping_address"`
	Items           []PaymentItem `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	OrderRef        string        `gorm:"uniqueIndex" json:"order_ref"` // server-generated, unlike TransactionID
	TransactionID   string        `gorm:"uniqueIndex" json:"transaction_id"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(10);default:'pending'" json:"payment_status"`
	PaymentMethod   string        `json:"payment_method"` // e.g. "card"
	AdminApproved   bool          `json:"admin_approved"`
	SellerReceived  bool          `json:"seller_received"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type PaymentItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	PaymentID       uint    `gorm:"index" json:"-"`
	MedicineID      uint    `json:"medicine_id"`
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalUnitPrice  float64 `json:"final_unit_price"`
	SellerEmail     string  `json:"seller_email"`
	Quantity        int     `json:"quantity"`
}
