// Package credentials turns environment-provided service-account fields into
// Google Cloud clients shared by the whole process.
package credentials

import (
	"encoding/json"
	"fmt"
	"strings"

	"somnolent/internal/config"

	"google.golang.org/api/option"
)

// ServiceAccount mirrors the JSON key file Google issues for a service account.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain,omitempty"`
}

// ServiceAccountFromConfig collects the FIREBASE_* fields. Hosting dashboards
// store the private key on one line, so literal "\n" sequences are expanded.
func ServiceAccountFromConfig(cfg *config.Config) ServiceAccount {
	return ServiceAccount{
		Type:                    cfg.FirebaseType,
		ProjectID:               cfg.FirebaseProjectID,
		PrivateKeyID:            cfg.FirebasePrivateKeyID,
		PrivateKey:              strings.ReplaceAll(cfg.FirebasePrivateKey, `\n`, "\n"),
		ClientEmail:             cfg.FirebaseClientEmail,
		ClientID:                cfg.FirebaseClientID,
		AuthURI:                 cfg.FirebaseAuthURI,
		TokenURI:                cfg.FirebaseTokenURI,
		AuthProviderX509CertURL: cfg.FirebaseAuthProviderCertURL,
		ClientX509CertURL:       cfg.FirebaseClientCertURL,
		UniverseDomain:          cfg.FirebaseUniverseDomain,
	}
}

// IsZero reports whether no key material was provided.
func (sa ServiceAccount) IsZero() bool {
	return sa.PrivateKey == "" && sa.ClientEmail == ""
}

// JSON renders the account as a credentials file.
func (sa ServiceAccount) JSON() ([]byte, error) {
	if sa.IsZero() {
		return nil, fmt.Errorf("service account has no private key or client email")
	}
	b, err := json.Marshal(sa)
	if err != nil {
		return nil, fmt.Errorf("marshal service account: %w", err)
	}
	return b, nil
}

// ClientOptions returns the options every Google client is built with. An empty
// account yields no options so Application Default Credentials and emulator
// hosts keep working.
func (sa ServiceAccount) ClientOptions() ([]option.ClientOption, error) {
	if sa.IsZero() {
		return nil, nil
	}
	b, err := sa.JSON()
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithCredentialsJSON(b)}, nil
}
