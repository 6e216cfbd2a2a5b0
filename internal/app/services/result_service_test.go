package services

import (
	"context"
	"testing"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories/inmemory"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/resultgate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultGate_Scenario(t *testing.T) {
	ctx := context.Background()
	repos := inmemory.NewRepositories()
	apps := NewApplicationService(repos.Applications, 100, zerolog.Nop())
	results := NewResultService(repos.Applications, resultgate.NewMemoryGate(), 85, zerolog.Nop())

	app, err := apps.Submit(ctx, &models.Application{Name: "Li", Number: "2025001", Grade: "2025"})
	require.NoError(t, err)

	// hidden by default, even before any score exists
	out, err := results.Query(ctx, "2025001")
	require.NoError(t, err)
	assert.Equal(t, models.ResultNotReleased, out.Status)

	require.NoError(t, results.Release(ctx))
	out, err = results.Query(ctx, "2025001")
	require.NoError(t, err)
	assert.Equal(t, models.ResultInProgress, out.Status)

	_, err = apps.Score(ctx, app.ID, "90")
	require.NoError(t, err)
	out, _ = results.Query(ctx, "2025001")
	assert.Equal(t, models.ResultPassed, out.Status)

	_, err = apps.Score(ctx, app.ID, "80")
	require.NoError(t, err)
	out, _ = results.Query(ctx, "2025001")
	assert.Equal(t, models.ResultFailed, out.Status)

	_, err = apps.Score(ctx, app.ID, "85")
	require.NoError(t, err)
	out, _ = results.Query(ctx, "2025001")
	assert.Equal(t, models.ResultPassed, out.Status, "threshold is inclusive")

	require.NoError(t, results.Hide(ctx))
	out, _ = results.Query(ctx, "2025001")
	assert.Equal(t, models.ResultNotReleased, out.Status)
	assert.Equal(t, msgNotReleased, out.Message)

	released, err := results.Released(ctx)
	require.NoError(t, err)
	assert.False(t, released)
}

func TestResultQuery_Errors(t *testing.T) {
	ctx := context.Background()
	repos := inmemory.NewRepositories()
	results := NewResultService(repos.Applications, resultgate.NewMemoryGate(), 85, zerolog.Nop())

	_, err := results.Query(ctx, "404404")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	_, err = results.Query(ctx, " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestResultQuery_UnparsableScoreIsInProgress(t *testing.T) {
	ctx := context.Background()
	repos := inmemory.NewRepositories()
	gate := resultgate.NewMemoryGate()
	results := NewResultService(repos.Applications, gate, 85, zerolog.Nop())

	app := &models.Application{Number: "2025009"}
	_, err := repos.Applications.Create(ctx, app)
	require.NoError(t, err)
	require.NoError(t, repos.Applications.UpdateScore(ctx, app.ID, "A+"))
	require.NoError(t, gate.SetReleased(ctx, true))

	out, err := results.Query(ctx, "2025009")
	require.NoError(t, err)
	assert.Equal(t, models.ResultInProgress, out.Status)
}
