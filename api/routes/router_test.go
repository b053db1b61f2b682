package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gamingtechpro/storefront-backend/internal/accounts"
	cartsvc "github.com/gamingtechpro/storefront-backend/internal/cart"
	checkoutsvc "github.com/gamingtechpro/storefront-backend/internal/checkout"
	"github.com/gamingtechpro/storefront-backend/internal/notifications"
	"github.com/gamingtechpro/storefront-backend/internal/orders"
	"github.com/gamingtechpro/storefront-backend/internal/pricing"
	"github.com/gamingtechpro/storefront-backend/pkg/auth/session"
	"github.com/gamingtechpro/storefront-backend/pkg/config"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "storefront-test"
	cfg.JWT.ExpirationMinutes = 60

	logg := logger.New(logger.Options{ServiceName: "router-test"})
	kv := kvstore.NewMemory()

	cartStore, err := cartsvc.NewStore(context.Background(), kv, kvstore.CartKey())
	if err != nil {
		t.Fatalf("failed to build cart: %v", err)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Params{
		LiveCart:  cartStore,
		KV:        kv,
		Selection: pricing.NewSelection(pricing.DefaultCatalog()),
		Schedule:  pricing.DefaultSchedule(),
		Processor: orders.ProcessorFunc(func(context.Context) error { return nil }),
		Notifier:  notifications.Noop{},
		Logger:    logg,
		Timeout:   time.Second,
	})
	if err != nil {
		t.Fatalf("failed to build checkout service: %v", err)
	}

	repo, err := accounts.NewRepository(kv)
	if err != nil {
		t.Fatalf("failed to build repository: %v", err)
	}
	sessions, err := session.NewManager(kv)
	if err != nil {
		t.Fatalf("failed to build session manager: %v", err)
	}
	accountsService, err := accounts.NewService(repo, sessions, cfg.JWT, logg, nil)
	if err != nil {
		t.Fatalf("failed to build accounts service: %v", err)
	}

	return NewRouter(cfg, logg, kv, sessions, cartStore, checkoutService, accountsService, notifications.Noop{})
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-GamingTech-Env"); got != config.AppEnvDev {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestCartEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		`{"id":"gt-1","name":"Mechanical Keyboard","unit_price":2500,"quantity":2}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch returned %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			Count    int    `json:"count"`
			Subtotal string `json:"subtotal"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode cart view: %v", err)
	}
	if envelope.Data.Count != 2 {
		t.Fatalf("expected count 2, got %d", envelope.Data.Count)
	}
	if envelope.Data.Subtotal != "PKR 5000.00" {
		t.Fatalf("expected subtotal PKR 5000.00, got %q", envelope.Data.Subtotal)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/gt-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected empty cart rejection, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		`{"id":"gt-1","name":"Gaming Mouse","unit_price":2500,"quantity":1}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("begin returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout/promo", `{"code":"SAVE15"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("promo returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout/order",
		`{"payment_method":"jazzcash","email":"buyer@example.com","phone":"+923001234567"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("order returned %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			OrderID string `json:"order_id"`
			Amount  string `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode confirmation: %v", err)
	}
	if !strings.HasPrefix(envelope.Data.OrderID, "GT") {
		t.Fatalf("expected GT order id, got %q", envelope.Data.OrderID)
	}
	if envelope.Data.Amount != "PKR 2800.00" {
		t.Fatalf("expected discounted amount, got %q", envelope.Data.Amount)
	}
}

func TestAuthFlowAndProtectedRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/account/activity", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register",
		`{"first_name":"Ayesha","last_name":"Khan","email":"ayesha@example.com","password":"hunter22","confirm_password":"hunter22"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}
	if envelope.Data.Token == "" {
		t.Fatal("expected a token")
	}

	headers := map[string]string{"Authorization": "Bearer " + envelope.Data.Token}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/account/me", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"first_name":"Ayesha"`) {
		t.Fatalf("expected profile in body, got %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/account/activity", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("activity returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout returned %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/account/activity", "", headers)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
