package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one catalog record in the products table. The table is
// populated and archived by the external inventory importer; this
// service only writes current_price and updated_at.
type Product struct {
	ID           string          `gorm:"column:id;primaryKey" json:"id"`
	Article      string          `gorm:"column:article" json:"article"`
	Code         string          `gorm:"column:code" json:"code"`
	Name         string          `gorm:"column:name" json:"name"`
	CurrentPrice decimal.Decimal `gorm:"column:current_price;type:decimal(12,2)" json:"current_price"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the gorm naming convention.
func (Product) TableName() string {
	return "products"
}

// PriceHistory is one append-only price change row. Rows are never
// mutated or deleted by this service.
type PriceHistory struct {
	ID        string          `gorm:"column:id;primaryKey" json:"id"`
	ProductID string          `gorm:"column:product_id" json:"product_id"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2)" json:"price"`
	Source    string          `gorm:"column:source" json:"source"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the gorm naming convention.
func (PriceHistory) TableName() string {
	return "price_history"
}
