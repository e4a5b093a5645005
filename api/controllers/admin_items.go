package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/api/responses"
	"github.com/AhmedKettaf/inilapstore/api/validators"
	catalogsvc "github.com/AhmedKettaf/inilapstore/internal/catalog"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
)

type createItemRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description,omitempty"`
	Tag         string           `json:"tag" validate:"required"`
	Price       decimal.Decimal  `json:"price"`
	IsOffer     bool             `json:"is_offer"`
	OfferPrice  *decimal.Decimal `json:"offer_price,omitempty"`
	Stock       int              `json:"stock" validate:"gte=0"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

type updateItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Tag         *string          `json:"tag,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsOffer     *bool            `json:"is_offer,omitempty"`
	OfferPrice  *decimal.Decimal `json:"offer_price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	ImageURL    *string          `json:"image_url,omitempty"`
}

// AdminItemsGrouped returns the whole catalog grouped by tag for the
// admin console listing.
func AdminItemsGrouped(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		groups, err := svc.GroupedItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, groups)
	}
}

// AdminItemCreate inserts a catalog item. The tag decides whether it
// lands in products or pc_parts.
func AdminItemCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !payload.Price.IsPositive() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive"))
			return
		}

		item, err := svc.CreateItem(r.Context(), catalogsvc.CreateItemInput{
			Name:        validators.SanitizeString(payload.Name, 120),
			Description: payload.Description,
			Tag:         strings.ToLower(strings.TrimSpace(payload.Tag)),
			Price:       payload.Price,
			IsOffer:     payload.IsOffer,
			OfferPrice:  payload.OfferPrice,
			Stock:       payload.Stock,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminItemUpdate applies a partial update to one catalog item.
func AdminItemUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		collection, id, err := itemPathParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.Price != nil && !payload.Price.IsPositive() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive"))
			return
		}

		input := catalogsvc.UpdateItemInput{
			Name:        payload.Name,
			Description: payload.Description,
			Tag:         payload.Tag,
			Price:       payload.Price,
			IsOffer:     payload.IsOffer,
			OfferPrice:  payload.OfferPrice,
			Stock:       payload.Stock,
			ImageURL:    payload.ImageURL,
		}
		if input.Tag != nil {
			normalized := strings.ToLower(strings.TrimSpace(*input.Tag))
			input.Tag = &normalized
		}

		item, err := svc.UpdateItem(r.Context(), collection, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// AdminItemDelete removes one catalog item.
func AdminItemDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		collection, id, err := itemPathParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), collection, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
