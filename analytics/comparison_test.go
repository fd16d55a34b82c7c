package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-analytics/models"
)

func historyAt(readingID string, base time.Time, step time.Duration, values ...float64) models.ReadingHistory {
	points := make([]models.ReadingValue, len(values))
	for i, v := range values {
		points[i] = models.ReadingValue{
			Timestamp:  base.Add(time.Duration(i) * step),
			Value:      v,
			Confidence: 0.9,
		}
	}
	return models.ReadingHistory{
		ReadingID:     readingID,
		MaterialType:  models.MaterialDrywall,
		EquipmentType: models.EquipmentMoistureMeter,
		Values:        points,
	}
}

func TestCompareReadings_RequiresTwoHistories(t *testing.T) {
	_, err := CompareReadings([]models.ReadingHistory{historyFromValues("solo", 1, 2, 3)}, models.ComparisonOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCompareReadings_IdenticalHistories(t *testing.T) {
	a := historyFromValues("a", 10, 12, 14, 13, 15)
	b := historyFromValues("b", 10, 12, 14, 13, 15)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:           models.CompareByValue,
		IgnoreTimestamps: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, result.ReadingIDs)
	assert.InDelta(t, 1.0, result.Correlation, 1e-9)
	assert.InDelta(t, 1.0, result.SimilarityScore, 1e-9)
	assert.Empty(t, result.Differences)
}

func TestCompareReadings_IndexAlignmentTruncates(t *testing.T) {
	a := historyFromValues("a", 1, 2, 3, 4, 5)
	b := historyFromValues("b", 10, 20, 30)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:           models.CompareByValue,
		IgnoreTimestamps: true,
	})
	require.NoError(t, err)

	// three aligned rows, all diverging beyond the zero tolerance
	require.Len(t, result.Differences, 3)
	assert.InDelta(t, 9.0, result.Differences[0].Deviation, 1e-9)
	assert.InDelta(t, 18.0, result.Differences[1].Deviation, 1e-9)
	assert.InDelta(t, 27.0, result.Differences[2].Deviation, 1e-9)
	assert.Equal(t, 1.0, result.Differences[0].Values["a"])
	assert.Equal(t, 10.0, result.Differences[0].Values["b"])
}

func TestCompareReadings_ToleranceFiltersRows(t *testing.T) {
	a := historyFromValues("a", 10, 10, 10)
	b := historyFromValues("b", 10.5, 12, 10.2)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:           models.CompareByValue,
		IgnoreTimestamps: true,
		Tolerance:        1.0,
	})
	require.NoError(t, err)

	require.Len(t, result.Differences, 1)
	assert.InDelta(t, 2.0, result.Differences[0].Deviation, 1e-9)
}

func TestCompareReadings_TimestampAlignment(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	a := historyAt("a", base, time.Hour, 10, 11, 12, 13)
	// shifted 5 minutes; last point is an hour off and must not match
	b := historyAt("b", base.Add(5*time.Minute), time.Hour, 20, 21, 22)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:        models.CompareByValue,
		TimeTolerance: 10 * time.Minute,
	})
	require.NoError(t, err)

	require.Len(t, result.Differences, 3)
	assert.Equal(t, base, result.Differences[0].Timestamp)
	assert.Equal(t, 10.0, result.Differences[0].Values["a"])
	assert.Equal(t, 20.0, result.Differences[0].Values["b"])
}

func TestCompareReadings_TimestampAlignment_NoMatches(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	a := historyAt("a", base, time.Hour, 10, 11, 12)
	b := historyAt("b", base.Add(30*time.Minute), time.Hour, 20, 21, 22)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:        models.CompareByValue,
		TimeTolerance: 10 * time.Minute,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Differences)
	assert.Equal(t, 0.0, result.Correlation)
}

func TestCompareReadings_TrendMethod(t *testing.T) {
	up := historyFromValues("up", 1, 2, 3, 4, 5)
	down := historyFromValues("down", 5, 4, 3, 2, 1)
	alsoUp := historyFromValues("also-up", 2, 4, 6, 8, 10)

	opposite, err := CompareReadings([]models.ReadingHistory{up, down}, models.ComparisonOptions{
		Method:           models.CompareByTrend,
		IgnoreTimestamps: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, opposite.SimilarityScore)

	matching, err := CompareReadings([]models.ReadingHistory{up, alsoUp}, models.ComparisonOptions{
		Method:           models.CompareByTrend,
		IgnoreTimestamps: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, matching.SimilarityScore)
}

func TestCompareReadings_PatternMethod(t *testing.T) {
	up := historyFromValues("up", 1, 2, 3, 4, 5)
	down := historyFromValues("down", 5, 4, 3, 2, 1)

	result, err := CompareReadings([]models.ReadingHistory{up, down}, models.ComparisonOptions{
		Method:           models.CompareByPattern,
		IgnoreTimestamps: true,
	})
	require.NoError(t, err)

	// perfectly anti-correlated
	assert.InDelta(t, -1.0, result.Correlation, 1e-9)
	assert.InDelta(t, 0.0, result.SimilarityScore, 1e-9)
}

func TestCompareReadings_WeightedBlend(t *testing.T) {
	a := historyFromValues("a", 1, 2, 3, 4, 5)
	b := historyFromValues("b", 1, 2, 3, 4, 5)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:           models.CompareByValue,
		IgnoreTimestamps: true,
		WeightFactors:    &models.WeightFactors{Value: 1, Trend: 1, Pattern: 1},
	})
	require.NoError(t, err)

	// value 1.0, trend 1.0, pattern 1.0 blend to 1.0
	assert.InDelta(t, 1.0, result.SimilarityScore, 1e-9)
}

func TestCompareReadings_Normalize(t *testing.T) {
	a := historyFromValues("a", 1, 2, 3, 4, 5)
	b := historyFromValues("b", 10, 20, 30, 40, 50)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:           models.CompareByValue,
		IgnoreTimestamps: true,
		NormalizeData:    true,
	})
	require.NoError(t, err)

	// proportional series become identical after min-max scaling
	assert.InDelta(t, 1.0, result.SimilarityScore, 1e-9)
	assert.Empty(t, result.Differences)
}

func TestCompareReadings_Period(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	a := historyAt("a", base, time.Hour, 1, 2, 3)
	b := historyAt("b", base.Add(-time.Hour), time.Hour, 4, 5, 6, 7)

	result, err := CompareReadings([]models.ReadingHistory{a, b}, models.ComparisonOptions{
		Method:           models.CompareByValue,
		IgnoreTimestamps: true,
	})
	require.NoError(t, err)

	assert.Equal(t, base.Add(-time.Hour), result.Period.Start)
	assert.Equal(t, base.Add(2*time.Hour), result.Period.End)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, normalize([]float64{2, 4, 6}))
	assert.Equal(t, []float64{0, 0, 0}, normalize([]float64{5, 5, 5}))
	assert.Nil(t, normalize(nil))
}
