package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"inspection-analytics/models"
)

// ReportOptions carries the optional embedded analyses and metadata for a
// history report.
type ReportOptions struct {
	Trends      []models.TrendAnalysis
	Comparisons []models.ComparisonResult
	Metadata    map[string]string
}

// GenerateReport groups audit-log entries by change type and assembles a
// report with a fresh ID and generation timestamp. Entries are assumed to
// arrive in chronological order; the report period is taken from the first
// and last entries as given.
func GenerateReport(entries []models.HistoryEntry, opts ReportOptions) (*models.HistoryReport, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: report requires at least one history entry", ErrInsufficientData)
	}

	byType := make(map[models.ChangeType]int)
	for _, e := range entries {
		byType[e.ChangeType]++
	}

	return &models.HistoryReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Period: models.Period{
			Start: entries[0].Timestamp,
			End:   entries[len(entries)-1].Timestamp,
		},
		Changes: models.ChangeSummary{
			Total:  len(entries),
			ByType: byType,
		},
		Trends:      opts.Trends,
		Comparisons: opts.Comparisons,
		Metadata:    opts.Metadata,
	}, nil
}
