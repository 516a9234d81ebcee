package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryCreditRepo keeps balances in process memory. It backs local
// development (STORE_BACKEND=memory) and tests.
type MemoryCreditRepo struct {
	mu            sync.Mutex
	credits       map[string]float64
	createMissing bool
}

func NewMemoryCreditRepo(createMissing bool) *MemoryCreditRepo {
	return &MemoryCreditRepo{credits: make(map[string]float64), createMissing: createMissing}
}

// Seed sets the balance of a user, creating the record.
func (r *MemoryCreditRepo) Seed(userID string, credits float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credits[userID] = credits
}

// Credits returns the stored balance and whether a record exists.
func (r *MemoryCreditRepo) Credits(userID string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.credits[userID]
	return c, ok
}

func (r *MemoryCreditRepo) IncrementCredits(ctx context.Context, userID string, delta float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.credits[userID]; !ok && !r.createMissing {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	r.credits[userID] += delta
	return nil
}
