package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AhmedKettaf/inilapstore/api/controllers"
	"github.com/AhmedKettaf/inilapstore/api/middleware"
	authsvc "github.com/AhmedKettaf/inilapstore/internal/auth"
	buildsvc "github.com/AhmedKettaf/inilapstore/internal/build"
	cartsvc "github.com/AhmedKettaf/inilapstore/internal/cart"
	catalogsvc "github.com/AhmedKettaf/inilapstore/internal/catalog"
	checkoutsvc "github.com/AhmedKettaf/inilapstore/internal/checkout"
	ordersvc "github.com/AhmedKettaf/inilapstore/internal/orders"
	"github.com/AhmedKettaf/inilapstore/pkg/auth/session"
	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/db"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
	"github.com/AhmedKettaf/inilapstore/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	Catalog  catalogsvc.Service
	Cart     cartsvc.Service
	Build    buildsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Auth     authsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/storefront", controllers.StorefrontFetch(deps.Catalog, logg))
		r.Get("/offers", controllers.OffersList(deps.Catalog, logg))
		r.Get("/catalog/{tag}", controllers.CatalogByTag(deps.Catalog, logg))
		r.Get("/items/{collection}/{id}", controllers.ItemDetail(deps.Catalog, logg))
		r.Get("/parts/{slot}", controllers.PartsBySlot(deps.Catalog, logg))
		r.Get("/search", controllers.ProductSearch(deps.Catalog, logg))

		// Everything below rides on the visitor's cart token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/items", controllers.CartAdd(deps.Cart, logg))
				r.Patch("/items/{collection}/{itemID}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{collection}/{itemID}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.Route("/build", func(r chi.Router) {
				r.Get("/", controllers.BuildFetch(deps.Build, logg))
				r.Put("/slots/{slot}", controllers.BuildSetSlot(deps.Build, logg))
				r.Delete("/slots/{slot}", controllers.BuildRemoveSlot(deps.Build, logg))
				r.Delete("/", controllers.BuildClear(deps.Build, logg))
				r.Post("/add-to-cart", controllers.BuildAddToCart(deps.Build, logg))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
				r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
				r.Get("/me", controllers.AuthProfile(deps.Auth, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.AdminItemsGrouped(deps.Catalog, logg))
				r.Post("/", controllers.AdminItemCreate(deps.Catalog, logg))
				r.Patch("/{collection}/{id}", controllers.AdminItemUpdate(deps.Catalog, logg))
				r.Delete("/{collection}/{id}", controllers.AdminItemDelete(deps.Catalog, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(deps.Orders, logg))
				r.Get("/stats", controllers.AdminOrderStats(deps.Orders, logg))
				r.Get("/{orderID}", controllers.AdminOrderDetail(deps.Orders, logg))
				r.Patch("/{orderID}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			})
		})
	})

	return r
}
