package config

import (
	"os"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BASE_URL", "https://somnolentai.com")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "10000" {
		t.Errorf("expected default port 10000, got %s", cfg.Port)
	}
	if cfg.StoreBackend != StoreFirestore {
		t.Errorf("expected firestore backend, got %s", cfg.StoreBackend)
	}
	if cfg.MissingUserPolicy != MissingUserFail {
		t.Errorf("expected fail policy, got %s", cfg.MissingUserPolicy)
	}
	if cfg.StripeCurrency != "ron" {
		t.Errorf("expected ron currency, got %s", cfg.StripeCurrency)
	}
	want := []string{"https://www.somnolentai.com", "https://somnolentai.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d allowed origins, got %v", len(want), cfg.AllowedOrigins)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: expected %s, got %s", i, want[i], cfg.AllowedOrigins[i])
		}
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	// t.Setenv restores the previous value once the test ends.
	t.Setenv("BASE_URL", "")
	os.Unsetenv("BASE_URL")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when BASE_URL is empty")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreBackend:      StoreMemory,
		MissingUserPolicy: MissingUserFail,
		StripeSecretKey:   "sk_test_123",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "redis" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StoreBackend = StorePostgres }, wantErr: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.StoreBackend = StorePostgres
			c.DBConnectionString = "postgres://localhost/credits"
		}},
		{name: "unknown policy", mutate: func(c *Config) { c.MissingUserPolicy = "ignore" }, wantErr: true},
		{name: "no stripe key", mutate: func(c *Config) { c.StripeSecretKey = "" }, wantErr: true},
		{name: "stripe key from secret manager", mutate: func(c *Config) {
			c.StripeSecretKey = ""
			c.StripeSecretKeySecret = "projects/p/secrets/stripe/versions/latest"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetGCPProjectID(t *testing.T) {
	cfg := Config{FirebaseProjectID: "somnolentai-3b507"}
	if got := cfg.GetGCPProjectID(); got != "somnolentai-3b507" {
		t.Errorf("expected firebase project fallback, got %s", got)
	}
	cfg.GCPProjectID = "explicit"
	if got := cfg.GetGCPProjectID(); got != "explicit" {
		t.Errorf("expected explicit project, got %s", got)
	}
}
