package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/AhmedKettaf/inilapstore/internal/auth"
	buildsvc "github.com/AhmedKettaf/inilapstore/internal/build"
	cartsvc "github.com/AhmedKettaf/inilapstore/internal/cart"
	catalogsvc "github.com/AhmedKettaf/inilapstore/internal/catalog"
	checkoutsvc "github.com/AhmedKettaf/inilapstore/internal/checkout"
	ordersvc "github.com/AhmedKettaf/inilapstore/internal/orders"
	pkgauth "github.com/AhmedKettaf/inilapstore/pkg/auth"
	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
	"github.com/AhmedKettaf/inilapstore/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubCatalogService struct{}

func (stubCatalogService) Storefront(context.Context) (*catalogsvc.StorefrontDTO, error) {
	return &catalogsvc.StorefrontDTO{}, nil
}

func (stubCatalogService) ListByTag(context.Context, string) ([]catalogsvc.ItemDTO, error) {
	return nil, nil
}

func (stubCatalogService) GetItem(context.Context, enums.Collection, int64) (*catalogsvc.ItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListOffers(context.Context) ([]catalogsvc.ItemDTO, error) {
	return nil, nil
}

func (stubCatalogService) ListPartsBySlot(context.Context, enums.PartType) ([]catalogsvc.ItemDTO, error) {
	return nil, nil
}

func (stubCatalogService) SearchProducts(context.Context, string) ([]catalogsvc.ItemDTO, error) {
	return nil, nil
}

func (stubCatalogService) CreateItem(context.Context, catalogsvc.CreateItemInput) (*catalogsvc.ItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateItem(context.Context, enums.Collection, int64, catalogsvc.UpdateItemInput) (*catalogsvc.ItemDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteItem(context.Context, enums.Collection, int64) error {
	panic("unimplemented")
}

func (stubCatalogService) GroupedItems(context.Context) ([]catalogsvc.TagGroupDTO, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, token string) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{Token: token}, nil
}

func (stubCartService) Add(context.Context, string, enums.Collection, int64, int) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) SetQuantity(context.Context, string, enums.Collection, int64, int) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) Remove(context.Context, string, enums.Collection, int64) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) Clear(context.Context, string) error {
	return nil
}

type stubBuildService struct{}

func (stubBuildService) Get(ctx context.Context, token string) (*buildsvc.BuildDTO, error) {
	return &buildsvc.BuildDTO{Token: token}, nil
}

func (stubBuildService) SetSlot(context.Context, string, enums.PartType, int64) (*buildsvc.BuildDTO, error) {
	panic("unimplemented")
}

func (stubBuildService) RemoveSlot(context.Context, string, enums.PartType) (*buildsvc.BuildDTO, error) {
	panic("unimplemented")
}

func (stubBuildService) Clear(context.Context, string) error {
	return nil
}

func (stubBuildService) AddToCart(context.Context, string) (*cartsvc.CartDTO, error) {
	panic("unimplemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) Submit(context.Context, checkoutsvc.SubmitInput) (*checkoutsvc.ResultDTO, error) {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) List(context.Context, string, pagination.Params) (*ordersvc.PageDTO, error) {
	return &ordersvc.PageDTO{}, nil
}

func (stubOrdersService) Get(context.Context, uuid.UUID) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) UpdateStatus(context.Context, uuid.UUID, string) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Stats(context.Context) (*ordersvc.StatsDTO, error) {
	return &ordersvc.StatsDTO{}, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginInput) (*authsvc.TokenPairDTO, error) {
	panic("unimplemented")
}

func (stubAuthService) Refresh(context.Context, string, string) (*authsvc.TokenPairDTO, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

func (stubAuthService) Profile(context.Context, uuid.UUID) (*authsvc.ProfileDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Redis:    stubPinger{},
		Sessions: stubSessionChecker{},
		Catalog:  stubCatalogService{},
		Cart:     stubCartService{},
		Build:    stubBuildService{},
		Checkout: stubCheckoutService{},
		Orders:   stubOrdersService{},
		Auth:     stubAuthService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "admin@inilapstore.dz",
		Role:   pkgauth.RoleAdmin,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestStorefrontIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/storefront", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartIssuesTokenWhenMissing(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	issued := resp.Header().Get("X-Cart-Token")
	if issued == "" {
		t.Fatal("expected a cart token header")
	}
	if err := uuid.Validate(issued); err != nil {
		t.Fatalf("expected uuid token, got %q", issued)
	}
}

func TestCartEchoesExistingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	token := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("X-Cart-Token", token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if got := resp.Header().Get("X-Cart-Token"); got != token {
		t.Fatalf("expected token %q echoed, got %q", token, got)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin token got %d", resp.Code)
	}
}
