package repository

import (
	"context"
	"errors"
	"math"
)

// ErrUserNotFound is returned when an increment targets a user with no stored
// record and the repository is not allowed to create one.
var ErrUserNotFound = errors.New("user not found")

// CreditRepository applies signed deltas to a user's credit balance. Every
// implementation uses the backing store's native atomic increment; none of
// them reads the balance before writing it.
type CreditRepository interface {
	IncrementCredits(ctx context.Context, userID string, delta float64) error
}

// incrementValue keeps integral deltas as integers so the stored field does
// not turn into a floating point value.
func incrementValue(delta float64) interface{} {
	if delta == math.Trunc(delta) && math.Abs(delta) < 1<<53 {
		return int64(delta)
	}
	return delta
}
