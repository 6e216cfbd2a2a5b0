package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories/inmemory"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationService() *ApplicationService {
	return NewApplicationService(inmemory.NewRepositories().Applications, 100, zerolog.Nop())
}

func TestSubmit_DuplicateNumberLeavesFirstUntouched(t *testing.T) {
	ctx := context.Background()
	svc := newApplicationService()

	first, err := svc.Submit(ctx, &models.Application{Name: "Li", Number: "2025001", Grade: "2025", FollowDirection: "backend"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, &models.Application{Name: "Impostor", Number: "2025001", Grade: "2024"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Li", stored.Name)
	assert.Equal(t, "2025", stored.Grade)
}

func TestSubmit_IgnoresAdminFields(t *testing.T) {
	ctx := context.Background()
	svc := newApplicationService()

	app, err := svc.Submit(ctx, &models.Application{Number: "2025002", Value: models.StringPtr("100"), AdminRemark: "hire"})
	require.NoError(t, err)
	assert.False(t, app.HasScore())
	assert.Empty(t, app.AdminRemark)

	_, err = svc.Submit(ctx, &models.Application{Number: "abc"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestScore_Range(t *testing.T) {
	ctx := context.Background()
	svc := newApplicationService()
	app, _ := svc.Submit(ctx, &models.Application{Number: "2025003"})

	for _, bad := range []string{"0", "101", "ninety", ""} {
		_, err := svc.Score(ctx, app.ID, bad)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, bad)
	}

	scored, err := svc.Score(ctx, app.ID, " 100 ")
	require.NoError(t, err)
	require.NotNil(t, scored.Value)
	assert.Equal(t, "100", *scored.Value)

	_, err = svc.Score(ctx, 9999, "50")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestUpdateRemarkDelete(t *testing.T) {
	ctx := context.Background()
	svc := newApplicationService()
	app, _ := svc.Submit(ctx, &models.Application{Name: "Li", Number: "2025004"})
	_, _ = svc.Score(ctx, app.ID, "70")

	updated, err := svc.Update(ctx, app.ID, &models.Application{Name: "Li Hua", Number: "2025004", Grade: "2025"})
	require.NoError(t, err)
	assert.Equal(t, "Li Hua", updated.Name)
	require.NotNil(t, updated.Value, "update keeps the score")

	remarked, err := svc.Remark(ctx, app.ID, " good ")
	require.NoError(t, err)
	assert.Equal(t, "good", remarked.AdminRemark)

	require.NoError(t, svc.Delete(ctx, app.ID))
	assert.ErrorIs(t, svc.Delete(ctx, app.ID), apperrors.ErrApplicationNotFound)
}

func TestListSearchExport(t *testing.T) {
	ctx := context.Background()
	svc := newApplicationService()
	_, _ = svc.Submit(ctx, &models.Application{Name: "Li Lei", Number: "2025010", Grade: "2025", FollowDirection: "Backend"})
	_, _ = svc.Submit(ctx, &models.Application{Name: "Han Meimei", Number: "2024011", Grade: "2024", FollowDirection: "frontend"})

	apps, page, err := svc.List(ctx, models.ApplicationFilter{Grade: "2024"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(1), page.TotalItems)

	found, err := svc.SearchByName(ctx, "li")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "2025010", found[0].Number)

	_, err = svc.SearchByName(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf, models.ApplicationFilter{}))
	assert.NotZero(t, buf.Len())
}
