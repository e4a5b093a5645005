package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// Product represents a finished-goods listing (PCs, laptops, monitors,
// accessories). PC components live in PCPart.
type Product struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Category    enums.ProductCategory `gorm:"column:category;not null;index"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	IsOffer     bool                  `gorm:"column:is_offer;not null;default:false"`
	OfferPrice  decimal.NullDecimal   `gorm:"column:offer_price;type:numeric(12,2)"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	ImageURL    *string               `gorm:"column:image_url"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
