package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedKettaf/inilapstore/api/middleware"
	"github.com/AhmedKettaf/inilapstore/api/responses"
	"github.com/AhmedKettaf/inilapstore/api/validators"
	cartsvc "github.com/AhmedKettaf/inilapstore/internal/cart"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
)

type cartAddRequest struct {
	Collection string `json:"collection" validate:"required"`
	ItemID     int64  `json:"item_id" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartFetch returns the visitor's cart, empty when nothing was added yet.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		record, err := svc.Get(r.Context(), middleware.CartTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// CartAdd adds an item to the visitor's cart, merging duplicate lines.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collection, err := enums.ParseCollection(strings.TrimSpace(payload.Collection))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid collection"))
			return
		}

		record, err := svc.Add(r.Context(), middleware.CartTokenFromContext(r.Context()), collection, payload.ItemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// CartUpdateItem sets the quantity of one cart line. Zero removes the line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		collection, itemID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetQuantity(r.Context(), middleware.CartTokenFromContext(r.Context()), collection, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		collection, itemID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Remove(r.Context(), middleware.CartTokenFromContext(r.Context()), collection, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// CartClear empties the visitor's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.Clear(r.Context(), middleware.CartTokenFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func cartLineParams(r *http.Request) (enums.Collection, int64, error) {
	collection, err := enums.ParseCollection(strings.TrimSpace(chi.URLParam(r, "collection")))
	if err != nil {
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid collection")
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil || itemID <= 0 {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id")
	}

	return collection, itemID, nil
}
