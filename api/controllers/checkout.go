package controllers

import (
	"net/http"
	"strings"

	"github.com/AhmedKettaf/inilapstore/api/middleware"
	"github.com/AhmedKettaf/inilapstore/api/responses"
	"github.com/AhmedKettaf/inilapstore/api/validators"
	checkoutsvc "github.com/AhmedKettaf/inilapstore/internal/checkout"
	pkgerrors "github.com/AhmedKettaf/inilapstore/pkg/errors"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
)

type checkoutRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"required"`
	Wilaya      string  `json:"wilaya" validate:"required"`
	Address     *string `json:"address,omitempty"`
}

// CheckoutSubmit converts the visitor's cart into a cash-on-delivery
// order. The Idempotency-Key header guards against double submission.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.SubmitInput{
			CartToken:      middleware.CartTokenFromContext(r.Context()),
			FullName:       validators.SanitizeString(payload.FullName, 120),
			PhoneNumber:    validators.SanitizeString(payload.PhoneNumber, 32),
			Wilaya:         validators.SanitizeString(payload.Wilaya, 64),
			Address:        payload.Address,
			IdempotencyKey: strings.TrimSpace(r.Header.Get("Idempotency-Key")),
		}

		result, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
