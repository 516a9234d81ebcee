package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"somnolent/internal/config"
	"somnolent/internal/model"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
)

// ErrCheckoutFailed wraps every failure reported by the payment provider.
var ErrCheckoutFailed = errors.New("checkout session creation failed")

const productNameFormat = "Afla acum semnificatia ascunsa a viselor tale cumparand %d credit(e) noi!"

// CheckoutSessionCreator issues the provider call. It matches checkoutsession.New.
type CheckoutSessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error)
}

type checkoutService struct {
	cfg        *config.Config
	newSession CheckoutSessionCreator
	logger     zerolog.Logger
}

// NewCheckoutService sets the Stripe key and returns a service backed by the
// Stripe Checkout API.
func NewCheckoutService(cfg *config.Config, logger zerolog.Logger) CheckoutService {
	stripe.Key = cfg.StripeSecretKey
	return newCheckoutService(cfg, checkoutsession.New, logger)
}

func newCheckoutService(cfg *config.Config, creator CheckoutSessionCreator, logger zerolog.Logger) *checkoutService {
	lg := logger.With().Str("service", "CheckoutService").Logger()
	return &checkoutService{cfg: cfg, newSession: creator, logger: lg}
}

// CreateCheckoutSession opens a one-time card payment for a single line item.
// No retry is attempted on provider failure.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutSession, error) {
	if err := checkAmounts(req); err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("Rejected checkout amount")
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	params, bonus := buildCheckoutSessionParams(s.cfg, req)
	params.Context = ctx

	sess, err := s.newSession(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to create Stripe checkout session")
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	s.logger.Info().Str("user_id", req.UserID).Str("session_id", sess.ID).Int64("credits", bonus).Msg("Checkout session created")
	return &model.CheckoutSession{
		ID:           sess.ID,
		BonusCredits: bonus,
	}, nil
}

// checkAmounts rejects requests whose unit amount or bonus credits cannot be
// carried as an int64.
func checkAmounts(req model.CheckoutRequest) error {
	if err := checkInt64Range("amount", req.Amount); err != nil {
		return err
	}
	return checkInt64Range("credits", req.Credits*CreditBonusMultiplier)
}

func checkInt64Range(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %v is not a finite number", name, v)
	}
	if f := math.Floor(v); f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("%s %v is out of range", name, v)
	}
	return nil
}

func buildCheckoutSessionParams(cfg *config.Config, req model.CheckoutRequest) (*stripe.CheckoutSessionParams, int64) {
	unitAmount := int64(math.Floor(req.Amount))
	bonus := BonusCredits(req.Credits)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(cfg.StripeCurrency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:   stripe.String(fmt.Sprintf(productNameFormat, PurchasedCredits(bonus))),
						Images: stripe.StringSlice([]string{cfg.StripeProductImageURL}),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL(cfg.BaseURL, req.UserID, bonus)),
		CancelURL:  stripe.String(cancelURL(cfg.BaseURL)),
		Metadata: map[string]string{
			"userId":  req.UserID,
			"credits": strconv.FormatInt(bonus, 10),
		},
	}
	return params, bonus
}

func successURL(baseURL, userID string, credits int64) string {
	return fmt.Sprintf("%s/success?user_id=%s&credits=%d", strings.TrimRight(baseURL, "/"), url.QueryEscape(userID), credits)
}

func cancelURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/buy-credits"
}
