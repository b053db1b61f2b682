package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gamingtechpro/storefront-backend/api/responses"
	"github.com/gamingtechpro/storefront-backend/api/validators"
	cartsvc "github.com/gamingtechpro/storefront-backend/internal/cart"
	"github.com/gamingtechpro/storefront-backend/internal/notifications"
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
	"github.com/gamingtechpro/storefront-backend/pkg/money"
)

type cartAddRequest struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageRef  string          `json:"image_ref"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartView struct {
	Lines    []cartsvc.Line `json:"lines"`
	Count    int            `json:"count"`
	Subtotal string         `json:"subtotal"`
}

func newCartView(store *cartsvc.Store) cartView {
	return cartView{
		Lines:    store.Lines(),
		Count:    store.Count(),
		Subtotal: money.Format(store.Total()),
	}
}

func CartFetch(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartAdd(store *cartsvc.Store, notifier notifications.Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line := cartsvc.Line{
			ID:        body.ID,
			Name:      body.Name,
			UnitPrice: body.UnitPrice,
			ImageRef:  body.ImageRef,
		}
		if err := store.Add(r.Context(), line, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if notifier != nil {
			notifier.Notify(r.Context(), body.Name+" added to cart!", enums.SeveritySuccess)
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartRemove(store *cartsvc.Store, notifier notifications.Notifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := store.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if notifier != nil {
			notifier.Notify(r.Context(), "Item removed from cart", enums.SeverityInfo)
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartSetQuantity updates a line's quantity. Zero and below drop the
// line entirely.
func CartSetQuantity(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.SetQuantity(r.Context(), productID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

func CartClear(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		if err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}
