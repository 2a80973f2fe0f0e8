package domain

import "time"

// Product is a catalog entry offered by the storefront
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Price       int64     `json:"price"` // smallest currency unit
	Category    string    `gorm:"size:64;index" json:"category"`
	Image       string    `gorm:"size:1024" json:"image"` // URL to product image (optional)
	Description string    `gorm:"size:2048" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}
