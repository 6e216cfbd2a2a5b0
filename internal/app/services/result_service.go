package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/metrics"
	"github.com/csecl/interviewhub/internal/pkg/resultgate"
	"github.com/rs/zerolog"
)

const (
	msgNotReleased = "Interview results are not yet available, please check back later"
	msgInProgress  = "Your application is still being reviewed"
	msgPassed      = "Congratulations, you have passed the interview"
	msgFailed      = "Unfortunately you did not pass the interview this time"
)

// ResultService answers result queries behind the released/hidden gate.
type ResultService struct {
	apps      repositories.ApplicationRepository
	gate      resultgate.Gate
	threshold int
	logger    zerolog.Logger
}

// NewResultService creates a new ResultService. Scores at or above threshold pass.
func NewResultService(apps repositories.ApplicationRepository, gate resultgate.Gate, threshold int, logger zerolog.Logger) *ResultService {
	return &ResultService{apps: apps, gate: gate, threshold: threshold, logger: logger}
}

// Release makes results queryable
func (s *ResultService) Release(ctx context.Context) error {
	if err := s.gate.SetReleased(ctx, true); err != nil {
		return fmt.Errorf("error releasing results: %w", err)
	}
	s.logger.Info().Msg("Interview results released")
	return nil
}

// Hide makes results unavailable again
func (s *ResultService) Hide(ctx context.Context) error {
	if err := s.gate.SetReleased(ctx, false); err != nil {
		return fmt.Errorf("error hiding results: %w", err)
	}
	s.logger.Info().Msg("Interview results hidden")
	return nil
}

// Released reports the current gate state
func (s *ResultService) Released(ctx context.Context) (bool, error) {
	released, err := s.gate.Released(ctx)
	if err != nil {
		return false, fmt.Errorf("error reading result gate: %w", err)
	}
	return released, nil
}

// Query looks up the result for a student number. The application must exist;
// while results are hidden the score is never inspected.
func (s *ResultService) Query(ctx context.Context, number string) (*models.ResultOutcome, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperrors.NewValidationError("number is required")
	}

	app, err := s.apps.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	released, err := s.Released(ctx)
	if err != nil {
		return nil, err
	}

	out := &models.ResultOutcome{Number: number}
	if !released {
		out.Status, out.Message = models.ResultNotReleased, msgNotReleased
		metrics.ObserveResultQuery(string(out.Status))
		return out, nil
	}

	switch score, ok := app.Score(); {
	case !ok:
		if app.HasScore() {
			s.logger.Warn().Str("number", number).Str("value", *app.Value).Msg("Stored score is not an integer")
		}
		out.Status, out.Message = models.ResultInProgress, msgInProgress
	case score >= s.threshold:
		out.Status, out.Message = models.ResultPassed, msgPassed
	default:
		out.Status, out.Message = models.ResultFailed, msgFailed
	}

	metrics.ObserveResultQuery(string(out.Status))
	return out, nil
}
