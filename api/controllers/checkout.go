package controllers

import (
	"net/http"

	"github.com/gamingtechpro/storefront-backend/api/responses"
	"github.com/gamingtechpro/storefront-backend/api/validators"
	"github.com/gamingtechpro/storefront-backend/internal/cart"
	checkoutsvc "github.com/gamingtechpro/storefront-backend/internal/checkout"
	"github.com/gamingtechpro/storefront-backend/internal/pricing"
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
	"github.com/gamingtechpro/storefront-backend/pkg/money"
)

type promoRequest struct {
	Code string `json:"code" validate:"required"`
}

type placeOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CardNumber    string `json:"card_number"`
	CardExpiry    string `json:"card_expiry"`
	CardCVV       string `json:"card_cvv"`
}

type totalsView struct {
	Subtotal   string `json:"subtotal"`
	Shipping   string `json:"shipping"`
	Tax        string `json:"tax"`
	Discount   string `json:"discount,omitempty"`
	GrandTotal string `json:"grand_total"`
}

func newTotalsView(t pricing.Totals) totalsView {
	view := totalsView{
		Subtotal:   money.Format(t.Subtotal),
		Shipping:   money.FormatShipping(t.Shipping),
		Tax:        money.Format(t.Tax),
		GrandTotal: money.Format(t.GrandTotal),
	}
	if !t.Discount.IsZero() {
		view.Discount = money.FormatDiscount(t.Discount)
	}
	return view
}

type summaryView struct {
	Lines  []cart.Line    `json:"lines"`
	Totals totalsView     `json:"totals"`
	Promo  *pricing.Promo `json:"promo,omitempty"`
}

type confirmationView struct {
	OrderID       string     `json:"order_id"`
	Amount        string     `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	Totals        totalsView `json:"totals"`
}

// CheckoutBegin snapshots the live cart for the checkout flow.
func CheckoutBegin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		if err := svc.Begin(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

func CheckoutSummary(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaryView{
			Lines:  summary.Lines,
			Totals: newTotalsView(summary.Totals),
			Promo:  summary.Promo,
		})
	}
}

func CheckoutApplyPromo(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body promoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promo, err := svc.ApplyPromo(r.Context(), body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]*pricing.Promo{"promo": promo})
	}
}

func CheckoutRemovePromo(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		svc.RemovePromo(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// CheckoutPlaceOrder runs the full placement workflow. The payment
// method string is passed through as-is; the service reports it among
// the field errors when it does not parse.
func CheckoutPlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body placeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		conf, err := svc.PlaceOrder(r.Context(), checkoutsvc.PlaceOrderInput{
			PaymentMethod: enums.PaymentMethod(body.PaymentMethod),
			Contact: checkoutsvc.ContactDetails{
				Email: body.Email,
				Phone: body.Phone,
			},
			Card: checkoutsvc.CardDetails{
				Number: body.CardNumber,
				Expiry: body.CardExpiry,
				CVV:    body.CardCVV,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, confirmationView{
			OrderID:       conf.OrderID,
			Amount:        conf.Amount,
			PaymentMethod: conf.PaymentMethod,
			Totals:        newTotalsView(conf.Totals),
		})
	}
}
