package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// PCPart represents a single PC component available to the build
// configurator and the parts catalog.
type PCPart struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string              `gorm:"column:name;not null"`
	Description *string             `gorm:"column:description"`
	PartType    enums.PartType      `gorm:"column:part_type;not null;index"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	IsOffer     bool                `gorm:"column:is_offer;not null;default:false"`
	OfferPrice  decimal.NullDecimal `gorm:"column:offer_price;type:numeric(12,2)"`
	Stock       int                 `gorm:"column:stock;not null;default:0"`
	ImageURL    *string             `gorm:"column:image_url"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
