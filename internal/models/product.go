package models

import "time"

type Product struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"not null" json:"price"`
	Quantity    int      `gorm:"not null;default:0" json:"quantity"` // stock on hand, never negative
	Sizes       []string `gorm:"serializer:json" json:"size"`
	Colors      []string `gorm:"serializer:json" json:"color"`
	Image       string   `json:"image"`

	CategoryID    uint      `gorm:"index;not null" json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	SubCategoryID uint      `gorm:"index;not null" json:"subCategoryId"`
	SubCategory   *Category `gorm:"foreignKey:SubCategoryID" json:"subCategory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
