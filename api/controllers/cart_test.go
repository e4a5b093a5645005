package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/AhmedKettaf/inilapstore/api/middleware"
	cartsvc "github.com/AhmedKettaf/inilapstore/internal/cart"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
)

type stubCartService struct {
	addFn func(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*cartsvc.CartDTO, error)
	getFn func(ctx context.Context, token string) (*cartsvc.CartDTO, error)
}

func (s stubCartService) Get(ctx context.Context, token string) (*cartsvc.CartDTO, error) {
	if s.getFn != nil {
		return s.getFn(ctx, token)
	}
	return &cartsvc.CartDTO{Token: token}, nil
}

func (s stubCartService) Add(ctx context.Context, token string, collection enums.Collection, itemID int64, quantity int) (*cartsvc.CartDTO, error) {
	if s.addFn != nil {
		return s.addFn(ctx, token, collection, itemID, quantity)
	}
	return &cartsvc.CartDTO{Token: token}, nil
}

func (s stubCartService) SetQuantity(context.Context, string, enums.Collection, int64, int) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (s stubCartService) Remove(context.Context, string, enums.Collection, int64) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (s stubCartService) Clear(context.Context, string) error {
	return nil
}

func TestCartAddPassesTokenAndPayload(t *testing.T) {
	token := uuid.NewString()
	var gotCollection enums.Collection
	var gotItemID int64
	var gotQuantity int

	svc := stubCartService{
		addFn: func(ctx context.Context, gotToken string, collection enums.Collection, itemID int64, quantity int) (*cartsvc.CartDTO, error) {
			if gotToken != token {
				t.Fatalf("unexpected token %q", gotToken)
			}
			gotCollection = collection
			gotItemID = itemID
			gotQuantity = quantity
			return &cartsvc.CartDTO{Token: gotToken, TotalQuantity: quantity}, nil
		},
	}

	body := `{"collection":"pc_parts","item_id":7,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCartToken(req.Context(), token))

	resp := httptest.NewRecorder()
	CartAdd(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if gotCollection != enums.CollectionPCParts || gotItemID != 7 || gotQuantity != 2 {
		t.Fatalf("unexpected call %v %d %d", gotCollection, gotItemID, gotQuantity)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalQuantity != 2 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestCartAddRejectsUnknownCollection(t *testing.T) {
	body := `{"collection":"furniture","item_id":7,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCartToken(req.Context(), uuid.NewString()))

	resp := httptest.NewRecorder()
	CartAdd(stubCartService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddRejectsMissingQuantity(t *testing.T) {
	body := `{"collection":"products","item_id":7}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCartToken(req.Context(), uuid.NewString()))

	resp := httptest.NewRecorder()
	CartAdd(stubCartService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartFetchUsesContextToken(t *testing.T) {
	token := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req = req.WithContext(middleware.WithCartToken(req.Context(), token))

	resp := httptest.NewRecorder()
	CartFetch(stubCartService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != token {
		t.Fatalf("expected token %q got %q", token, envelope.Data.Token)
	}
}
