package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gamingtechpro/storefront-backend/api/controllers"
	"github.com/gamingtechpro/storefront-backend/api/middleware"
	"github.com/gamingtechpro/storefront-backend/internal/accounts"
	cartsvc "github.com/gamingtechpro/storefront-backend/internal/cart"
	checkoutsvc "github.com/gamingtechpro/storefront-backend/internal/checkout"
	"github.com/gamingtechpro/storefront-backend/internal/notifications"
	"github.com/gamingtechpro/storefront-backend/pkg/auth/session"
	"github.com/gamingtechpro/storefront-backend/pkg/config"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
)

// NewRouter wires the HTTP surface. Cart and checkout stay public the
// way the storefront treats guest shoppers; only account endpoints sit
// behind the bearer token.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storePinger kvstore.Pinger,
	sessions session.Checker,
	cartStore *cartsvc.Store,
	checkoutService checkoutsvc.Service,
	accountsService accounts.Service,
	notifier notifications.Notifier,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePinger))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(accountsService, logg))
		r.Post("/login", controllers.AuthLogin(accountsService, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.AuthLogout(accountsService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.CartFetch(cartStore, logg))
		r.Post("/items", controllers.CartAdd(cartStore, notifier, logg))
		r.Put("/items/{productId}", controllers.CartSetQuantity(cartStore, logg))
		r.Delete("/items/{productId}", controllers.CartRemove(cartStore, notifier, logg))
		r.Delete("/", controllers.CartClear(cartStore, logg))
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Post("/", controllers.CheckoutBegin(checkoutService, logg))
		r.Get("/summary", controllers.CheckoutSummary(checkoutService, logg))
		r.Post("/promo", controllers.CheckoutApplyPromo(checkoutService, logg))
		r.Delete("/promo", controllers.CheckoutRemovePromo(checkoutService, logg))
		r.Post("/order", controllers.CheckoutPlaceOrder(checkoutService, logg))
	})

	r.Route("/api/v1/account", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Get("/me", controllers.AccountMe(accountsService, logg))
		r.Get("/activity", controllers.AccountActivity(accountsService, logg))
	})

	return r
}
