package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/export"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/csecl/interviewhub/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// ApplicationService manages interview applications
type ApplicationService struct {
	repo     repositories.ApplicationRepository
	maxScore int
	logger   zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(repo repositories.ApplicationRepository, maxScore int, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, maxScore: maxScore, logger: logger}
}

// Submit stores a new application. A second submission with the same student
// number fails with a conflict and leaves the first one untouched.
func (s *ApplicationService) Submit(ctx context.Context, app *models.Application) (*models.Application, error) {
	if !validation.IsStudentNumber(app.Number) {
		return nil, apperrors.NewValidationError("number must be a student number")
	}
	app.Value = nil
	app.AdminRemark = ""

	if _, err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", app.ID).Str("number", app.Number).Msg("Application submitted")
	return app, nil
}

// Get retrieves an application by ID
func (s *ApplicationService) Get(ctx context.Context, id int64) (*models.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a filtered page of applications, newest first
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter, page, size int) ([]models.Application, helpers.Page, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error counting applications: %w", err)
	}

	p := helpers.ClampPage(page, size, total)
	apps, err := s.repo.List(ctx, filter, p.Offset(), p.Limit())
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error listing applications: %w", err)
	}
	return apps, p, nil
}

// SearchByName returns every application whose name contains name
func (s *ApplicationService) SearchByName(ctx context.Context, name string) ([]models.Application, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	return s.all(ctx, models.ApplicationFilter{Name: name})
}

func (s *ApplicationService) all(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting applications: %w", err)
	}
	if total == 0 {
		return []models.Application{}, nil
	}

	apps, err := s.repo.List(ctx, filter, 0, uint64(total))
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return apps, nil
}

// Update replaces the applicant-supplied fields of an application
func (s *ApplicationService) Update(ctx context.Context, id int64, app *models.Application) (*models.Application, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if !validation.IsStudentNumber(app.Number) {
		return nil, apperrors.NewValidationError("number must be a student number")
	}

	app.ID = id
	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Score assigns an integer score between 1 and the configured maximum
func (s *ApplicationService) Score(ctx context.Context, id int64, raw string) (*models.Application, error) {
	score, err := validation.ParseScore(raw, s.maxScore)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.UpdateScore(ctx, id, strconv.Itoa(score)); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("applicationID", id).Int("score", score).Msg("Application scored")
	return s.repo.GetByID(ctx, id)
}

// Remark sets the admin remark
func (s *ApplicationService) Remark(ctx context.Context, id int64, remark string) (*models.Application, error) {
	if err := s.repo.UpdateRemark(ctx, id, strings.TrimSpace(remark)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete deletes an application
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("applicationID", id).Msg("Application deleted")
	return nil
}

// Export writes every application matching filter as an xlsx workbook
func (s *ApplicationService) Export(ctx context.Context, w io.Writer, filter models.ApplicationFilter) error {
	apps, err := s.all(ctx, filter)
	if err != nil {
		return err
	}
	return export.WriteApplications(w, apps)
}
