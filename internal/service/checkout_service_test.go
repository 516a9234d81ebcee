package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"somnolent/internal/config"
	"somnolent/internal/model"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:               "https://somnolentai.com",
		StripeCurrency:        "ron",
		StripeProductImageURL: "https://res.cloudinary.com/img.png",
	}
}

type captureCreator struct {
	params *stripe.CheckoutSessionParams
	err    error
}

func (c *captureCreator) create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	c.params = params
	if c.err != nil {
		return nil, c.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil
}

func TestCreateCheckoutSessionScenario(t *testing.T) {
	cc := &captureCreator{}
	svc := newCheckoutService(testConfig(), cc.create, zerolog.Nop())

	sess, err := svc.CreateCheckoutSession(context.Background(), model.CheckoutRequest{Amount: 1999, Credits: 5, UserID: "u1"})
	if err != nil {
		t.Fatalf("CreateCheckoutSession returned error: %v", err)
	}
	if sess.ID != "cs_test_123" {
		t.Errorf("expected session id cs_test_123, got %s", sess.ID)
	}
	if sess.BonusCredits != 10 {
		t.Errorf("expected 10 bonus credits, got %d", sess.BonusCredits)
	}

	p := cc.params
	if p == nil {
		t.Fatal("provider was not called")
	}
	if len(p.LineItems) != 1 {
		t.Fatalf("expected one line item, got %d", len(p.LineItems))
	}
	item := p.LineItems[0]
	if *item.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", *item.Quantity)
	}
	if *item.PriceData.UnitAmount != 1999 {
		t.Errorf("expected unit_amount 1999, got %d", *item.PriceData.UnitAmount)
	}
	if *item.PriceData.Currency != "ron" {
		t.Errorf("expected currency ron, got %s", *item.PriceData.Currency)
	}
	name := *item.PriceData.ProductData.Name
	if !strings.Contains(name, " 5 credit(e)") {
		t.Errorf("expected product name to reference 5 credits, got %q", name)
	}
	if len(item.PriceData.ProductData.Images) != 1 || *item.PriceData.ProductData.Images[0] != "https://res.cloudinary.com/img.png" {
		t.Errorf("unexpected product images: %v", item.PriceData.ProductData.Images)
	}
	if *p.Mode != string(stripe.CheckoutSessionModePayment) {
		t.Errorf("expected payment mode, got %s", *p.Mode)
	}
	if *p.SuccessURL != "https://somnolentai.com/success?user_id=u1&credits=10" {
		t.Errorf("unexpected success url: %s", *p.SuccessURL)
	}
	if *p.CancelURL != "https://somnolentai.com/buy-credits" {
		t.Errorf("unexpected cancel url: %s", *p.CancelURL)
	}
	if p.Metadata["userId"] != "u1" || p.Metadata["credits"] != "10" {
		t.Errorf("unexpected metadata: %v", p.Metadata)
	}
	if p.Context == nil {
		t.Error("expected request context to be attached to params")
	}
}

func TestCreateCheckoutSessionFloorsInputs(t *testing.T) {
	tests := []struct {
		amount, credits float64
		wantUnit        int64
		wantBonus       int64
	}{
		{amount: 1999.99, credits: 5.7, wantUnit: 1999, wantBonus: 10},
		{amount: 500, credits: 1, wantUnit: 500, wantBonus: 2},
		{amount: 10000.5, credits: 50.01, wantUnit: 10000, wantBonus: 100},
	}
	for _, tt := range tests {
		cc := &captureCreator{}
		svc := newCheckoutService(testConfig(), cc.create, zerolog.Nop())
		if _, err := svc.CreateCheckoutSession(context.Background(), model.CheckoutRequest{Amount: tt.amount, Credits: tt.credits, UserID: "u1"}); err != nil {
			t.Fatalf("CreateCheckoutSession returned error: %v", err)
		}
		if got := *cc.params.LineItems[0].PriceData.UnitAmount; got != tt.wantUnit {
			t.Errorf("amount %v: expected unit_amount %d, got %d", tt.amount, tt.wantUnit, got)
		}
		if !strings.HasSuffix(*cc.params.SuccessURL, "&credits="+strconv.FormatInt(tt.wantBonus, 10)) {
			t.Errorf("credits %v: unexpected success url %s", tt.credits, *cc.params.SuccessURL)
		}
	}
}

func TestCreateCheckoutSessionProviderError(t *testing.T) {
	cc := &captureCreator{err: errors.New("invalid api key")}
	svc := newCheckoutService(testConfig(), cc.create, zerolog.Nop())

	_, err := svc.CreateCheckoutSession(context.Background(), model.CheckoutRequest{Amount: 1999, Credits: 5, UserID: "u1"})
	if !errors.Is(err, ErrCheckoutFailed) {
		t.Fatalf("expected ErrCheckoutFailed, got %v", err)
	}
}

func TestCreateCheckoutSessionRejectsUnrepresentableAmounts(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		credits float64
	}{
		{name: "huge amount", amount: 1e30, credits: 5},
		{name: "amount at int64 max", amount: math.MaxInt64, credits: 5},
		{name: "infinite amount", amount: math.Inf(1), credits: 5},
		{name: "nan amount", amount: math.NaN(), credits: 5},
		{name: "huge credits", amount: 1999, credits: 1e30},
		{name: "credits overflow after bonus", amount: 1999, credits: math.MaxInt64 / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := &captureCreator{}
			svc := newCheckoutService(testConfig(), cc.create, zerolog.Nop())

			_, err := svc.CreateCheckoutSession(context.Background(), model.CheckoutRequest{Amount: tt.amount, Credits: tt.credits, UserID: "u1"})
			if !errors.Is(err, ErrCheckoutFailed) {
				t.Fatalf("expected ErrCheckoutFailed, got %v", err)
			}
			if cc.params != nil {
				t.Error("provider must not be called")
			}
		})
	}
}

func TestSuccessURLEscapesUserID(t *testing.T) {
	got := successURL("https://somnolentai.com/", "a&b c", 4)
	want := "https://somnolentai.com/success?user_id=a%26b+c&credits=4"
	if got != want {
		t.Errorf("successURL = %q, want %q", got, want)
	}
}
