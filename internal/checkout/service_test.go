package checkout

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gamingtechpro/storefront-backend/internal/cart"
	"github.com/gamingtechpro/storefront-backend/internal/orders"
	"github.com/gamingtechpro/storefront-backend/internal/pricing"
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	"github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string, _ enums.Severity) {
	r.messages = append(r.messages, message)
}

type fixture struct {
	svc      Service
	liveCart *cart.Store
	kv       kvstore.Store
	notifier *recordingNotifier
}

func newFixture(t *testing.T, processor orders.Processor) *fixture {
	t.Helper()

	kv := kvstore.NewMemory()
	liveCart, err := cart.NewStore(context.Background(), kv, kvstore.CartKey())
	if err != nil {
		t.Fatalf("failed to build cart: %v", err)
	}
	notifier := &recordingNotifier{}
	svc, err := NewService(Params{
		LiveCart:  liveCart,
		KV:        kv,
		Selection: pricing.NewSelection(pricing.DefaultCatalog()),
		Schedule:  pricing.DefaultSchedule(),
		Processor: processor,
		Notifier:  notifier,
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Timeout:   time.Second,
		Now:       func() time.Time { return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return &fixture{svc: svc, liveCart: liveCart, kv: kv, notifier: notifier}
}

func succeedingProcessor() orders.Processor {
	return orders.ProcessorFunc(func(context.Context) error { return nil })
}

func failingProcessor() orders.Processor {
	return orders.ProcessorFunc(func(context.Context) error {
		return fmt.Errorf("gateway unavailable")
	})
}

func addLine(t *testing.T, f *fixture, id string, price int64, quantity int) {
	t.Helper()
	err := f.liveCart.Add(context.Background(), cart.Line{
		ID:        id,
		Name:      "Product " + id,
		UnitPrice: decimal.NewFromInt(price),
	}, quantity)
	if err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
}

func validInput() PlaceOrderInput {
	return PlaceOrderInput{
		PaymentMethod: enums.PaymentMethodJazzCash,
		Contact: ContactDetails{
			Email: "customer@example.com",
			Phone: "+923001234567",
		},
	}
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t, succeedingProcessor())
	err := f.svc.Begin(context.Background())
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.notifier.messages) == 0 || f.notifier.messages[0] != "Your cart is empty!" {
		t.Fatalf("expected empty cart notification, got %v", f.notifier.messages)
	}
}

func TestSummaryDecoupledFromLiveCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, succeedingProcessor())
	addLine(t, f, "gt-1", 2500, 1)
	if err := f.svc.Begin(ctx); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	// Edits after Begin must not change what checkout prices.
	addLine(t, f, "gt-2", 9000, 3)

	summary, err := f.svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Lines) != 1 {
		t.Fatalf("expected 1 snapshot line, got %d", len(summary.Lines))
	}
	if !summary.Totals.GrandTotal.Equal(decimal.NewFromInt(3175)) {
		t.Fatalf("expected grand total 3175, got %s", summary.Totals.GrandTotal)
	}
}

func TestPlaceOrderCollectsEveryFieldError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, succeedingProcessor())
	addLine(t, f, "gt-1", 2500, 1)
	if err := f.svc.Begin(ctx); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	_, err := f.svc.PlaceOrder(ctx, PlaceOrderInput{
		PaymentMethod: enums.PaymentMethodCard,
		Contact:       ContactDetails{Email: "not-an-email", Phone: "12345"},
		Card:          CardDetails{Number: "123", Expiry: "13/99", CVV: "12"},
	})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	for _, field := range []string{"email", "phone", "card_number", "card_expiry", "card_cvv"} {
		if _, present := fields[field]; !present {
			t.Errorf("expected error for field %q, got %v", field, fields)
		}
	}
	if got := f.svc.Status(); got != enums.CheckoutStatusIdle {
		t.Fatalf("expected idle status after rejection, got %s", got)
	}
}

func TestPlaceOrderSkipsCardChecksForWallets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, succeedingProcessor())
	addLine(t, f, "gt-1", 2500, 1)
	if err := f.svc.Begin(ctx); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	input := validInput()
	input.Card = CardDetails{Number: "junk", Expiry: "junk", CVV: "junk"}
	if _, err := f.svc.PlaceOrder(ctx, input); err != nil {
		t.Fatalf("expected wallet order to ignore card fields, got %v", err)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, succeedingProcessor())
	addLine(t, f, "gt-1", 2500, 1)
	if err := f.svc.Begin(ctx); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	conf, err := f.svc.PlaceOrder(ctx, validInput())
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !strings.HasPrefix(conf.OrderID, "GT") {
		t.Fatalf("expected GT-prefixed order id, got %q", conf.OrderID)
	}
	if conf.Amount != "PKR 3175.00" {
		t.Fatalf("expected formatted amount, got %q", conf.Amount)
	}
	if conf.PaymentMethod != "JazzCash" {
		t.Fatalf("expected display name, got %q", conf.PaymentMethod)
	}
	if !f.liveCart.IsEmpty() {
		t.Fatal("expected live cart to be cleared after order")
	}
	if _, err := f.kv.Get(ctx, kvstore.CheckoutCartKey()); !kvstore.IsNotFound(err) {
		t.Fatalf("expected checkout snapshot removed, got %v", err)
	}
	if got := f.svc.Status(); got != enums.CheckoutStatusSucceeded {
		t.Fatalf("expected succeeded status, got %s", got)
	}
}

func TestPlaceOrderFailureLeavesCartsIntact(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, failingProcessor())
	addLine(t, f, "gt-1", 2500, 1)
	if err := f.svc.Begin(ctx); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	_, err := f.svc.PlaceOrder(ctx, validInput())
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if f.liveCart.IsEmpty() {
		t.Fatal("expected live cart to survive a failed order")
	}
	if _, err := f.kv.Get(ctx, kvstore.CheckoutCartKey()); err != nil {
		t.Fatalf("expected checkout snapshot to survive, got %v", err)
	}
	if got := f.svc.Status(); got != enums.CheckoutStatusIdle {
		t.Fatalf("expected idle status for retry, got %s", got)
	}
	last := f.notifier.messages[len(f.notifier.messages)-1]
	if last != "Order processing failed. Please try again." {
		t.Fatalf("expected generic failure message, got %q", last)
	}
}

func TestPromoChangesCheckoutTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, succeedingProcessor())
	addLine(t, f, "gt-1", 2500, 1)
	if err := f.svc.Begin(ctx); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := f.svc.ApplyPromo(ctx, "  save15 "); err != nil {
		t.Fatalf("apply promo failed: %v", err)
	}
	summary, err := f.svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if !summary.Totals.GrandTotal.Equal(decimal.NewFromInt(2800)) {
		t.Fatalf("expected discounted total 2800, got %s", summary.Totals.GrandTotal)
	}

	f.svc.RemovePromo(ctx)
	summary, err = f.svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if !summary.Totals.GrandTotal.Equal(decimal.NewFromInt(3175)) {
		t.Fatalf("expected full total 3175 after removal, got %s", summary.Totals.GrandTotal)
	}
}

func TestApplyPromoUnknownCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t, succeedingProcessor())
	_, err := f.svc.ApplyPromo(context.Background(), "NOPE99")
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
