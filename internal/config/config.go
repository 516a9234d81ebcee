package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"

	MissingUserFail   = "fail"
	MissingUserCreate = "create"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"10000"`
	Environment string `envconfig:"ENV" default:"production"`
	BaseURL     string `envconfig:"BASE_URL" required:"true"`
	StaticDir   string `envconfig:"STATIC_DIR" default:"build"`

	// Stripe settings
	StripeSecretKey       string `envconfig:"STRIPE_SECRET_KEY"`
	StripeSecretKeySecret string `envconfig:"STRIPE_SECRET_KEY_SECRET"`
	StripeCurrency        string `envconfig:"STRIPE_CURRENCY" default:"ron"`
	StripeProductImageURL string `envconfig:"STRIPE_PRODUCT_IMAGE_URL" default:"https://res.cloudinary.com/dsqwnuyiw/image/upload/v1711565459/home_shape_sxxfum.png"`

	// Credit store settings
	StoreBackend       string `envconfig:"STORE_BACKEND" default:"firestore"`
	MissingUserPolicy  string `envconfig:"MISSING_USER_POLICY" default:"fail"`
	UsersCollection    string `envconfig:"USERS_COLLECTION" default:"users"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`

	// Firebase service account, one variable per JSON field
	FirebaseType                string `envconfig:"FIREBASE_TYPE"`
	FirebaseProjectID           string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebasePrivateKeyID        string `envconfig:"FIREBASE_PRIVATE_KEY_ID"`
	FirebasePrivateKey          string `envconfig:"FIREBASE_PRIVATE_KEY"`
	FirebaseClientEmail         string `envconfig:"FIREBASE_CLIENT_EMAIL"`
	FirebaseClientID            string `envconfig:"FIREBASE_CLIENT_ID"`
	FirebaseAuthURI             string `envconfig:"FIREBASE_AUTH_URI"`
	FirebaseTokenURI            string `envconfig:"FIREBASE_TOKEN_URI"`
	FirebaseAuthProviderCertURL string `envconfig:"FIREBASE_AUTH_PROVIDER_CERT_URL"`
	FirebaseClientCertURL       string `envconfig:"FIREBASE_CLIENT_CERT_URL"`
	FirebaseUniverseDomain      string `envconfig:"FIREBASE_UNIVERSE_DOMAIN"`

	// Google Cloud settings
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	PubSubCreditsTopic string `envconfig:"PUBSUB_CREDITS_TOPIC"`

	// HTTP edge settings
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"https://www.somnolentai.com,https://somnolentai.com"`
	CSPReportURI   string   `envconfig:"CSP_REPORT_URI" default:"https://66c628d9a05c71ef2916207b.endpoint.csper.io/?v=2"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings and the fields each store backend depends on.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreFirestore, StoreMemory:
	case StorePostgres:
		if c.DBConnectionString == "" {
			return fmt.Errorf("DB_CONNECTION_STRING is required when STORE_BACKEND=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.MissingUserPolicy {
	case MissingUserFail, MissingUserCreate:
	default:
		return fmt.Errorf("unknown MISSING_USER_POLICY %q", c.MissingUserPolicy)
	}
	if c.StripeSecretKey == "" && c.StripeSecretKeySecret == "" {
		return fmt.Errorf("one of STRIPE_SECRET_KEY or STRIPE_SECRET_KEY_SECRET is required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// GetGCPProjectID prefers the explicit project and falls back to the service account's.
func (c *Config) GetGCPProjectID() string {
	if c.GCPProjectID != "" {
		return c.GCPProjectID
	}
	return c.FirebaseProjectID
}
