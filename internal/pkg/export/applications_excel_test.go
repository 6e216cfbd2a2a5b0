package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteApplications(t *testing.T) {
	apps := []models.Application{
		{ID: 1, Name: "Li", Number: "2025001", Grade: "2025", Value: models.StringPtr("90"), BookTime: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Wang", Number: "2025002", Grade: "2025"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteApplications(&buf, apps))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(applicationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Student number", rows[0][2])
	assert.Equal(t, "2025001", rows[1][2])
	assert.Equal(t, "90", rows[1][15])
	assert.Equal(t, "", rows[2][15])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "applications_2025-09-01.xlsx", Filename(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
}
