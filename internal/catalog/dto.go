package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/pkg/db/models"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

// ItemDTO is the uniform catalog payload returned to clients. Products and
// PC parts share this shape; Tag carries the category or part type and
// Collection says which table the item came from.
type ItemDTO struct {
	ID             int64            `json:"id"`
	Collection     enums.Collection `json:"collection"`
	Name           string           `json:"name"`
	Description    *string          `json:"description,omitempty"`
	Tag            string           `json:"tag"`
	Price          decimal.Decimal  `json:"price"`
	IsOffer        bool             `json:"is_offer"`
	OfferPrice     *decimal.Decimal `json:"offer_price,omitempty"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	Stock          int              `json:"stock"`
	StockLabel     string           `json:"stock_label"`
	ImageURL       *string          `json:"image_url,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// StorefrontDTO is the joined home payload: the full catalog plus the
// current offers, fetched in one round trip.
type StorefrontDTO struct {
	Products []ItemDTO `json:"products"`
	PCParts  []ItemDTO `json:"pc_parts"`
	Offers   []ItemDTO `json:"offers"`
}

// TagGroupDTO summarizes one tag bucket in the admin grouped view.
type TagGroupDTO struct {
	Tag        string           `json:"tag"`
	Collection enums.Collection `json:"collection"`
	Count      int              `json:"count"`
	LowStock   int              `json:"low_stock"`
	OutOfStock int              `json:"out_of_stock"`
	Items      []ItemDTO        `json:"items"`
}

// CreateItemInput holds the validated payload to create a catalog item. The
// tag decides which collection the row lands in.
type CreateItemInput struct {
	Name        string
	Description *string
	Tag         string
	Price       decimal.Decimal
	IsOffer     bool
	OfferPrice  *decimal.Decimal
	Stock       int
	ImageURL    *string
}

// UpdateItemInput holds optional mutation values for a catalog item.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Tag         *string
	Price       *decimal.Decimal
	IsOffer     *bool
	OfferPrice  *decimal.Decimal
	Stock       *int
	ImageURL    *string
}

// NewItemDTOFromProduct builds the uniform payload from a product row.
func NewItemDTOFromProduct(product *models.Product) ItemDTO {
	var offer *decimal.Decimal
	if product.OfferPrice.Valid {
		v := product.OfferPrice.Decimal
		offer = &v
	}
	dto := ItemDTO{
		ID:          product.ID,
		Collection:  enums.CollectionProducts,
		Name:        product.Name,
		Description: product.Description,
		Tag:         product.Category.String(),
		Price:       product.Price,
		IsOffer:     product.IsOffer,
		OfferPrice:  offer,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	dto.EffectivePrice = EffectivePrice(dto.Price, dto.IsOffer, dto.OfferPrice)
	dto.StockLabel = StockLabel(dto.Stock)
	return dto
}

// NewItemDTOFromPart builds the uniform payload from a pc_parts row.
func NewItemDTOFromPart(part *models.PCPart) ItemDTO {
	var offer *decimal.Decimal
	if part.OfferPrice.Valid {
		v := part.OfferPrice.Decimal
		offer = &v
	}
	dto := ItemDTO{
		ID:          part.ID,
		Collection:  enums.CollectionPCParts,
		Name:        part.Name,
		Description: part.Description,
		Tag:         part.PartType.String(),
		Price:       part.Price,
		IsOffer:     part.IsOffer,
		OfferPrice:  offer,
		Stock:       part.Stock,
		ImageURL:    part.ImageURL,
		CreatedAt:   part.CreatedAt,
		UpdatedAt:   part.UpdatedAt,
	}
	dto.EffectivePrice = EffectivePrice(dto.Price, dto.IsOffer, dto.OfferPrice)
	dto.StockLabel = StockLabel(dto.Stock)
	return dto
}
