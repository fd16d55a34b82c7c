package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-analytics/models"
)

func entriesAt(base time.Time, changeTypes ...models.ChangeType) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, len(changeTypes))
	for i, ct := range changeTypes {
		entries[i] = models.HistoryEntry{
			EntityID:   "entity-1",
			EntityType: "reading",
			ChangeType: ct,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return entries
}

func TestGenerateReport(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := entriesAt(base, models.ChangeCreate, models.ChangeCreate, models.ChangeUpdate)

	report, err := GenerateReport(entries, ReportOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 3, report.Changes.Total)
	assert.Equal(t, map[models.ChangeType]int{
		models.ChangeCreate: 2,
		models.ChangeUpdate: 1,
	}, report.Changes.ByType)
	assert.Equal(t, base, report.Period.Start)
	assert.Equal(t, base.Add(2*time.Minute), report.Period.End)
}

func TestGenerateReport_EmptyEntries(t *testing.T) {
	_, err := GenerateReport(nil, ReportOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestGenerateReport_PassesThroughOptions(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := entriesAt(base, models.ChangeStatusChange)

	trends := []models.TrendAnalysis{{ReadingID: "r-1", Trend: models.TrendIncreasing}}
	comparisons := []models.ComparisonResult{{ReadingIDs: []string{"r-1", "r-2"}}}
	metadata := map[string]string{"job": "job-42"}

	report, err := GenerateReport(entries, ReportOptions{
		Trends:      trends,
		Comparisons: comparisons,
		Metadata:    metadata,
	})
	require.NoError(t, err)

	assert.Equal(t, trends, report.Trends)
	assert.Equal(t, comparisons, report.Comparisons)
	assert.Equal(t, metadata, report.Metadata)
}

func TestGenerateReport_FreshIDs(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entries := entriesAt(base, models.ChangeCreate)

	first, err := GenerateReport(entries, ReportOptions{})
	require.NoError(t, err)

	second, err := GenerateReport(entries, ReportOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Changes, second.Changes)
}
