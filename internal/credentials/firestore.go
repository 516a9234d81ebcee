package credentials

import (
	"context"
	"fmt"

	"somnolent/internal/config"

	"cloud.google.com/go/firestore"
)

// OpenFirestore opens the process-wide document store handle.
func OpenFirestore(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	opts, err := ServiceAccountFromConfig(cfg).ClientOptions()
	if err != nil {
		return nil, err
	}
	projectID := cfg.GetGCPProjectID()
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}
