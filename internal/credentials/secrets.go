package credentials

import (
	"context"
	"fmt"
	"strings"

	"somnolent/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretResolver reads secret payloads from Secret Manager.
type SecretResolver struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretResolver(ctx context.Context, cfg *config.Config) (*SecretResolver, error) {
	opts, err := ServiceAccountFromConfig(cfg).ClientOptions()
	if err != nil {
		return nil, err
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &SecretResolver{client: client, projectID: cfg.GetGCPProjectID()}, nil
}

// Resolve returns the payload of the named secret version.
func (s *SecretResolver) Resolve(ctx context.Context, name string) (string, error) {
	resourceName, err := secretVersionName(s.projectID, name)
	if err != nil {
		return "", err
	}
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: resourceName})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %s: %w", resourceName, err)
	}
	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (s *SecretResolver) Close() error {
	return s.client.Close()
}

// secretVersionName expands a bare secret id into a full version resource name.
// Names that already carry a project or a version are kept as given.
func secretVersionName(projectID, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("secret name is empty")
	}
	if !strings.HasPrefix(name, "projects/") {
		if projectID == "" {
			return "", fmt.Errorf("GCP project ID is required to resolve secret %q", name)
		}
		name = fmt.Sprintf("projects/%s/secrets/%s", projectID, name)
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	return name, nil
}
