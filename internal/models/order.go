package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"index;not null" json:"userId"`
	User   *User `json:"user,omitempty"`

	// Items are owned by the order and go away with it.
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`

	TotalAmount     float64     `gorm:"not null" json:"totalAmount"`
	Status          OrderStatus `gorm:"not null;default:PENDING" json:"status"`
	ShippingAddress string      `gorm:"type:text;not null" json:"shippingAddress"`
	TransactionID   *string     `json:"transactionId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"index;not null" json:"orderId"`
	ProductID uint     `gorm:"index;not null" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	// Price is the unit price captured when the order was placed, not the
	// product's live price.
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}
