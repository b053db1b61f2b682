package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/gamingtechpro/storefront-backend/internal/cart"
	"github.com/gamingtechpro/storefront-backend/internal/notifications"
	"github.com/gamingtechpro/storefront-backend/internal/orders"
	"github.com/gamingtechpro/storefront-backend/internal/pricing"
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	"github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
	"github.com/gamingtechpro/storefront-backend/pkg/metrics"
	"github.com/gamingtechpro/storefront-backend/pkg/money"
)

// Summary is the order review shown before placement.
type Summary struct {
	Lines  []cart.Line
	Totals pricing.Totals
	Promo  *pricing.Promo
}

// Confirmation is returned once an order has been accepted.
type Confirmation struct {
	OrderID       string
	Amount        string
	PaymentMethod string
	Totals        pricing.Totals
}

// Service drives the order placement workflow. The checkout works off
// its own snapshot of the cart, so edits to the live cart between
// review and placement do not change what gets charged.
type Service interface {
	Begin(ctx context.Context) error
	Summary(ctx context.Context) (*Summary, error)
	ApplyPromo(ctx context.Context, code string) (*pricing.Promo, error)
	RemovePromo(ctx context.Context)
	Status() enums.CheckoutStatus
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Confirmation, error)
}

type service struct {
	mu       sync.Mutex
	status   enums.CheckoutStatus
	liveCart *cart.Store
	kv       kvstore.Store

	selection *pricing.Selection
	schedule  pricing.Schedule
	processor orders.Processor
	notifier  notifications.Notifier
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger

	timeout time.Duration
	now     func() time.Time
}

// Params collects the collaborators for NewService.
type Params struct {
	LiveCart  *cart.Store
	KV        kvstore.Store
	Selection *pricing.Selection
	Schedule  pricing.Schedule
	Processor orders.Processor
	Notifier  notifications.Notifier
	Metrics   *metrics.CheckoutMetrics
	Logger    *logger.Logger
	Timeout   time.Duration
	Now       func() time.Time
}

func NewService(p Params) (Service, error) {
	if p.LiveCart == nil {
		return nil, fmt.Errorf("checkout: live cart is required")
	}
	if p.KV == nil {
		return nil, fmt.Errorf("checkout: kv store is required")
	}
	if p.Selection == nil {
		return nil, fmt.Errorf("checkout: promo selection is required")
	}
	if p.Processor == nil {
		return nil, fmt.Errorf("checkout: order processor is required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("checkout: logger is required")
	}
	if p.Notifier == nil {
		p.Notifier = notifications.Noop{}
	}
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		status:    enums.CheckoutStatusIdle,
		liveCart:  p.LiveCart,
		kv:        p.KV,
		selection: p.Selection,
		schedule:  p.Schedule,
		processor: p.Processor,
		notifier:  p.Notifier,
		metrics:   p.Metrics,
		logg:      p.Logger,
		timeout:   p.Timeout,
		now:       p.Now,
	}, nil
}

// Begin snapshots the live cart under the checkout key. An empty cart
// cannot enter checkout.
func (s *service) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = enums.CheckoutStatusIdle

	if s.liveCart.IsEmpty() {
		s.notifier.Notify(ctx, "Your cart is empty!", enums.SeverityError)
		return errors.New(errors.CodeValidation, "cart is empty")
	}

	snapshot, err := s.liveCart.Snapshot()
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to snapshot cart")
	}
	if err := s.kv.Set(ctx, kvstore.CheckoutCartKey(), snapshot); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to persist checkout snapshot")
	}
	return nil
}

// Summary reads the checkout snapshot and prices it with the currently
// applied promo.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.checkoutLines(ctx)
	if err != nil {
		return nil, err
	}
	promo := s.selection.Current()
	return &Summary{
		Lines:  lines,
		Totals: pricing.ComputeTotals(linesSubtotal(lines), promo, s.schedule),
		Promo:  promo,
	}, nil
}

func (s *service) ApplyPromo(ctx context.Context, code string) (*pricing.Promo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.selection.Apply(code)
	if err != nil {
		s.metrics.IncPromoLookup("miss")
		s.notifier.Notify(ctx, "Invalid promo code", enums.SeverityError)
		return nil, err
	}
	s.metrics.IncPromoLookup("hit")
	s.notifier.Notify(ctx, fmt.Sprintf("Promo code %s applied!", promo.Code), enums.SeveritySuccess)
	return &promo, nil
}

func (s *service) RemovePromo(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection.Remove()
	s.notifier.Notify(ctx, "Promo code removed", enums.SeverityInfo)
}

func (s *service) Status() enums.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PlaceOrder validates the payload, runs the processor against the
// checkout snapshot and, on success, clears both the live cart and the
// snapshot. A failed attempt leaves both carts intact so the customer
// can retry.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.checkoutLines(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		s.notifier.Notify(ctx, "Your cart is empty!", enums.SeverityError)
		return nil, errors.New(errors.CodeValidation, "cart is empty")
	}

	s.status = enums.CheckoutStatusValidating
	if fields := input.fieldErrors(s.now()); len(fields) > 0 {
		s.status = enums.CheckoutStatusIdle
		var combined error
		for field, message := range fields {
			combined = multierr.Append(combined, fmt.Errorf("%s: %s", field, message))
		}
		s.logg.Warn(s.logg.WithField(ctx, "error", combined.Error()), "order payload rejected")
		s.notifier.Notify(ctx, "Please fill in all required fields correctly", enums.SeverityError)
		return nil, errors.New(errors.CodeValidation, "invalid order details").WithDetails(fields)
	}

	s.status = enums.CheckoutStatusProcessing
	totals := pricing.ComputeTotals(linesSubtotal(lines), s.selection.Current(), s.schedule)

	processCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := s.now()
	processErr := s.processor.ProcessOrder(processCtx)
	s.metrics.ObserveProcessDuration(input.PaymentMethod.String(), time.Since(started))

	if processErr != nil {
		s.status = enums.CheckoutStatusFailed
		s.metrics.IncOrderFailed()
		s.logg.Error(ctx, "order processing failed", processErr)
		s.notifier.Notify(ctx, "Order processing failed. Please try again.", enums.SeverityError)
		s.status = enums.CheckoutStatusIdle
		return nil, errors.Wrap(errors.CodeDependency, processErr, "order processing failed")
	}

	if err := s.liveCart.Clear(ctx); err != nil {
		s.logg.Error(ctx, "failed to clear cart after order", err)
	}
	if err := s.kv.Remove(ctx, kvstore.CheckoutCartKey()); err != nil && !kvstore.IsNotFound(err) {
		s.logg.Error(ctx, "failed to drop checkout snapshot", err)
	}
	s.selection.Remove()
	s.status = enums.CheckoutStatusSucceeded

	orderID := fmt.Sprintf("GT%d", s.now().UnixMilli())
	s.logg.Info(s.logg.WithOrderID(ctx, orderID), "order placed")
	s.metrics.IncOrderPlaced()
	s.notifier.Notify(ctx, "Order placed successfully!", enums.SeveritySuccess)

	return &Confirmation{
		OrderID:       orderID,
		Amount:        money.Format(totals.GrandTotal),
		PaymentMethod: input.PaymentMethod.DisplayName(),
		Totals:        totals,
	}, nil
}

// checkoutLines loads the snapshot written by Begin. A missing key is
// an empty checkout, not an error.
func (s *service) checkoutLines(ctx context.Context) ([]cart.Line, error) {
	raw, err := s.kv.Get(ctx, kvstore.CheckoutCartKey())
	if kvstore.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to load checkout snapshot")
	}
	lines, err := cart.DecodeSnapshot(raw)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func linesSubtotal(lines []cart.Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}
