package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreditsSchema creates the table used by the postgres backend.
const CreditsSchema = `
	CREATE TABLE IF NOT EXISTS user_credits (
		user_id    TEXT PRIMARY KEY,
		credits    NUMERIC NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type postgresCreditRepo struct {
	pool          *pgxpool.Pool
	createMissing bool
}

// NewPostgresCreditRepo keeps balances in user_credits. Increments are single
// UPDATE statements, so concurrent deltas for one user serialize on the row lock.
func NewPostgresCreditRepo(pool *pgxpool.Pool, createMissing bool) CreditRepository {
	return &postgresCreditRepo{pool: pool, createMissing: createMissing}
}

// EnsureCreditsSchema creates user_credits if it does not exist yet.
func EnsureCreditsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, CreditsSchema); err != nil {
		return fmt.Errorf("creating user_credits table: %w", err)
	}
	return nil
}

func (r *postgresCreditRepo) IncrementCredits(ctx context.Context, userID string, delta float64) error {
	if r.createMissing {
		const upsertQ = `
			INSERT INTO user_credits (user_id, credits)
			VALUES ($1, $2::numeric)
			ON CONFLICT (user_id) DO UPDATE
			SET credits = user_credits.credits + EXCLUDED.credits,
			    updated_at = now()
		`
		if _, err := r.pool.Exec(ctx, upsertQ, userID, delta); err != nil {
			return fmt.Errorf("upserting credits for user %s: %w", userID, err)
		}
		return nil
	}

	const updateQ = `
		UPDATE user_credits
		SET credits = credits + $2::numeric,
		    updated_at = now()
		WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, updateQ, userID, delta)
	if err != nil {
		return fmt.Errorf("incrementing credits for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return nil
}
