package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedKettaf/inilapstore/api/middleware"
	"github.com/AhmedKettaf/inilapstore/api/responses"
	"github.com/AhmedKettaf/inilapstore/api/validators"
	buildsvc "github.com/AhmedKettaf/inilapstore/internal/build"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
)

type buildSlotRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
}

// BuildFetch returns the visitor's PC build draft with slot states.
func BuildFetch(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "build service unavailable"))
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

// BuildSetSlot assigns a part to one configurator slot, replacing any
// previous selection for that slot.
func BuildSetSlot(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "build service unavailable"))
			return
		}

		slot, err := buildSlotParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload buildSlotRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetSlot(r.Context(), middleware.CartTokenFromContext(r.Context()), slot, payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// BuildRemoveSlot clears one slot of the build draft.
func BuildRemoveSlot(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "build service unavailable"))
			return
		}

		slot, err := buildSlotParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.RemoveSlot(r.Context(), middleware.CartTokenFromContext(r.Context()), slot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// BuildClear discards the whole build draft.
func BuildClear(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "build service unavailable"))
			return
		}

		if err := svc.Clear(r.Context(), middleware.CartTokenFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// BuildAddToCart transfers a complete build into the cart, one unit per
// slot, and clears the draft.
func BuildAddToCart(svc buildsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "build service unavailable"))
			return
		}

		record, err := svc.AddToCart(r.Context(), middleware.CartTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

func buildSlotParam(r *http.Request) (enums.PartType, error) {
	slot, err := enums.ParsePartType(strings.TrimSpace(chi.URLParam(r, "slot")))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid part slot")
	}
	return slot, nil
}
