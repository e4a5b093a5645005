package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AhmedKettaf/inilapstore/api/middleware"
	checkoutsvc "github.com/AhmedKettaf/inilapstore/internal/checkout"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

type stubCheckoutService struct {
	submitFn func(ctx context.Context, input checkoutsvc.SubmitInput) (*checkoutsvc.ResultDTO, error)
}

func (s stubCheckoutService) Submit(ctx context.Context, input checkoutsvc.SubmitInput) (*checkoutsvc.ResultDTO, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, input)
	}
	return &checkoutsvc.ResultDTO{
		OrderID:    uuid.New(),
		Status:     enums.OrderStatusPending,
		State:      enums.CheckoutStateSucceeded,
		TotalPrice: decimal.Zero,
	}, nil
}

func TestCheckoutSubmitSanitizesAndForwards(t *testing.T) {
	token := uuid.NewString()
	var got checkoutsvc.SubmitInput
	svc := stubCheckoutService{
		submitFn: func(ctx context.Context, input checkoutsvc.SubmitInput) (*checkoutsvc.ResultDTO, error) {
			got = input
			return &checkoutsvc.ResultDTO{
				OrderID:    uuid.New(),
				Status:     enums.OrderStatusPending,
				State:      enums.CheckoutStateSucceeded,
				TotalPrice: decimal.NewFromInt(9000),
			}, nil
		},
	}

	body := `{"full_name":"  Amine Benali  ","phone_number":" 0550123456 ","wilaya":" Alger "}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "  order-once  ")
	req = req.WithContext(middleware.WithCartToken(req.Context(), token))

	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.CartToken != token {
		t.Fatalf("expected cart token %q, got %q", token, got.CartToken)
	}
	if got.FullName != "Amine Benali" || got.PhoneNumber != "0550123456" || got.Wilaya != "Alger" {
		t.Fatalf("expected trimmed fields, got %+v", got)
	}
	if got.IdempotencyKey != "order-once" {
		t.Fatalf("expected trimmed idempotency key, got %q", got.IdempotencyKey)
	}
}

func TestCheckoutSubmitTruncatesOverlongName(t *testing.T) {
	var got checkoutsvc.SubmitInput
	svc := stubCheckoutService{
		submitFn: func(ctx context.Context, input checkoutsvc.SubmitInput) (*checkoutsvc.ResultDTO, error) {
			got = input
			return &checkoutsvc.ResultDTO{State: enums.CheckoutStateSucceeded}, nil
		},
	}

	long := strings.Repeat("a", 300)
	body := `{"full_name":"` + long + `","phone_number":"0550123456","wilaya":"Alger"}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCartToken(req.Context(), uuid.NewString()))

	resp := httptest.NewRecorder()
	CheckoutSubmit(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if len(got.FullName) != 120 {
		t.Fatalf("expected name capped at 120 chars, got %d", len(got.FullName))
	}
}
