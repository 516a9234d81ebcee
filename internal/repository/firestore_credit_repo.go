package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const creditsField = "credits"

type firestoreCreditRepo struct {
	client        *firestore.Client
	collection    string
	createMissing bool
	logger        zerolog.Logger
}

// NewFirestoreCreditRepo stores balances in the "credits" field of
// <collection>/<userID>. With createMissing the document is created on first
// increment; otherwise a missing document yields ErrUserNotFound.
func NewFirestoreCreditRepo(client *firestore.Client, collection string, createMissing bool, logger zerolog.Logger) CreditRepository {
	return &firestoreCreditRepo{
		client:        client,
		collection:    collection,
		createMissing: createMissing,
		logger:        logger.With().Str("repository", "firestore_credits").Logger(),
	}
}

func (r *firestoreCreditRepo) IncrementCredits(ctx context.Context, userID string, delta float64) error {
	doc := r.client.Collection(r.collection).Doc(userID)
	if doc == nil {
		return fmt.Errorf("invalid user document path %q", userID)
	}

	inc := firestore.Increment(incrementValue(delta))
	var err error
	if r.createMissing {
		_, err = doc.Set(ctx, map[string]interface{}{creditsField: inc}, firestore.MergeAll)
	} else {
		_, err = doc.Update(ctx, []firestore.Update{{Path: creditsField, Value: inc}})
	}
	if err != nil {
		return firestoreIncrementError(userID, err)
	}
	r.logger.Debug().Str("user_id", userID).Float64("delta", delta).Msg("credits incremented")
	return nil
}

// firestoreIncrementError maps a NotFound from Update onto ErrUserNotFound.
func firestoreIncrementError(userID string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return fmt.Errorf("incrementing credits for user %s: %w", userID, err)
}
