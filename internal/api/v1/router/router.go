package router

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"somnolent/internal/api/v1/handler"
	"somnolent/internal/config"
	"somnolent/internal/credentials"
	"somnolent/internal/middleware"
	"somnolent/internal/pubsub"
	"somnolent/internal/repository"
	"somnolent/internal/service"
	"somnolent/internal/web"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Deps are the long-lived collaborators shared by all requests.
type Deps struct {
	Checkout service.CheckoutService
	Credits  service.CreditService
	Static   http.Handler
}

// New opens the store, resolves secrets and returns the full HTTP handler.
// The returned close function releases every client opened here.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. Resolve the Stripe key from Secret Manager when it is not set directly
	if cfg.StripeSecretKey == "" {
		resolver, err := credentials.NewSecretResolver(ctx, cfg)
		if err != nil {
			return nil, closeAll, err
		}
		key, err := resolver.Resolve(ctx, cfg.StripeSecretKeySecret)
		_ = resolver.Close()
		if err != nil {
			return nil, closeAll, fmt.Errorf("resolving Stripe secret key: %w", err)
		}
		cfg.StripeSecretKey = key
		logger.Info().Msg("Stripe secret key loaded from Secret Manager")
	}

	// 2. Open the credit store
	createMissing := cfg.MissingUserPolicy == config.MissingUserCreate
	var creditRepo repository.CreditRepository
	switch cfg.StoreBackend {
	case config.StoreFirestore:
		client, err := credentials.OpenFirestore(ctx, cfg)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, func() { _ = client.Close() })
		creditRepo = repository.NewFirestoreCreditRepo(client, cfg.UsersCollection, createMissing, logger)
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBConnectionString)
		if err != nil {
			return nil, closeAll, fmt.Errorf("failed to open DB pool: %w", err)
		}
		closers = append(closers, pool.Close)
		if err := pool.Ping(ctx); err != nil {
			return nil, closeAll, fmt.Errorf("failed to ping DB: %w", err)
		}
		if err := repository.EnsureCreditsSchema(ctx, pool); err != nil {
			return nil, closeAll, err
		}
		creditRepo = repository.NewPostgresCreditRepo(pool, createMissing)
	case config.StoreMemory:
		logger.Warn().Msg("Using in-memory credit store; balances are lost on restart")
		creditRepo = repository.NewMemoryCreditRepo(createMissing)
	default:
		return nil, closeAll, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	logger.Info().Str("store", cfg.StoreBackend).Str("missing_user_policy", cfg.MissingUserPolicy).Msg("Credit store ready")

	// 3. Optional credit event publisher
	var events service.CreditEventSink
	if cfg.PubSubCreditsTopic != "" {
		pub, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, func() { _ = pub.Close() })
		events = pubsub.NewCreditEventPublisher(pub, cfg.PubSubCreditsTopic)
	}

	deps := Deps{
		Checkout: service.NewCheckoutService(cfg, logger),
		Credits:  service.NewCreditService(creditRepo, events, logger),
		Static:   web.NewSPAHandler(os.DirFS(cfg.StaticDir)),
	}
	return NewHandler(cfg, deps, logger), closeAll, nil
}

// NewHandler assembles routes and middleware around already built services.
func NewHandler(cfg *config.Config, deps Deps, logger zerolog.Logger) http.Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	checkoutHandler := handler.NewCheckoutHandler(deps.Checkout, validate, logger)
	creditsHandler := handler.NewCreditsHandler(deps.Credits, validate, logger)

	mux := http.NewServeMux()
	checkoutHandler.RegisterRoutes(mux)
	creditsHandler.RegisterRoutes(mux)
	mux.Handle("/", deps.Static)

	var h http.Handler = mux
	h = middleware.SecurityHeaders(cfg.CSPReportURI)(h)
	h = middleware.CORS(trimOrigins(cfg.AllowedOrigins), logger)(h)
	if !cfg.IsDevelopment() {
		h = middleware.ForceHTTPS(h)
	}

	// The platform probes health over plain HTTP, so it bypasses the redirect.
	root := http.NewServeMux()
	handler.RegisterHealthRoute(root, logger)
	root.Handle("/", h)
	return middleware.LoggerMiddleware(logger)(root)
}

func trimOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}
