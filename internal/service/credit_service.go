package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"somnolent/internal/model"
	"somnolent/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrCreditUpdateFailed wraps every failure reported by the credit store.
var ErrCreditUpdateFailed = errors.New("credit update failed")

// CreditEventSink receives an event for every applied increment.
type CreditEventSink interface {
	PublishCreditEvent(ctx context.Context, ev model.CreditEvent) error
}

type CreditService interface {
	// UpdateCredits adds delta to the user's balance. The delta is signed and
	// is not checked against the purchase bonus policy.
	UpdateCredits(ctx context.Context, userID string, delta float64) error
}

type creditService struct {
	repo   repository.CreditRepository
	events CreditEventSink
	logger zerolog.Logger
	now    func() time.Time
}

// NewCreditService returns a CreditService. events may be nil.
func NewCreditService(repo repository.CreditRepository, events CreditEventSink, logger zerolog.Logger) CreditService {
	lg := logger.With().Str("service", "CreditService").Logger()
	return &creditService{repo: repo, events: events, logger: lg, now: time.Now}
}

func (s *creditService) UpdateCredits(ctx context.Context, userID string, delta float64) error {
	if err := s.repo.IncrementCredits(ctx, userID, delta); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Float64("credits", delta).Msg("Failed to update credits")
		return fmt.Errorf("%w: %w", ErrCreditUpdateFailed, err)
	}
	s.logger.Info().Str("user_id", userID).Float64("credits", delta).Msg("Credits updated")

	if s.events == nil {
		return nil
	}
	ev := model.CreditEvent{
		ID:         uuid.NewString(),
		Type:       model.CreditEventTypeUpdated,
		UserID:     userID,
		Delta:      delta,
		OccurredAt: s.now().UTC(),
	}
	// The increment is already applied; a lost event must not turn into a 500.
	if err := s.events.PublishCreditEvent(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Str("event_id", ev.ID).Msg("Failed to publish credit event")
	}
	return nil
}
