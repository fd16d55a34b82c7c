package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-analytics/models"
)

func pointsFromValues(values ...float64) []models.ReadingValue {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	points := make([]models.ReadingValue, len(values))
	for i, v := range values {
		points[i] = models.ReadingValue{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Value:     v,
		}
	}
	return points
}

func TestDetectAnomalies(t *testing.T) {
	points := pointsFromValues(10, 10, 10, 10, 100)
	s, err := CalculateStatistics([]float64{10, 10, 10, 10, 100})
	require.NoError(t, err)

	anomalies := DetectAnomalies(points, s, 1.0)

	require.Len(t, anomalies, 1)
	assert.Equal(t, 100.0, anomalies[0].Value)
	assert.Equal(t, points[4].Timestamp, anomalies[0].Timestamp)
	assert.InDelta(t, s.Average-s.StandardDeviation, anomalies[0].ExpectedRange.Min, 1e-9)
	assert.InDelta(t, s.Average+s.StandardDeviation, anomalies[0].ExpectedRange.Max, 1e-9)
}

func TestDetectAnomalies_BoundaryIsNotAnomalous(t *testing.T) {
	// band is average +/- stdDev*threshold; a point exactly on the edge stays inside
	s := models.Statistics{Average: 10, StandardDeviation: 2}
	points := pointsFromValues(12, 8, 12.0001, 7.9999)

	anomalies := DetectAnomalies(points, s, 1.0)

	require.Len(t, anomalies, 2)
	assert.Equal(t, 12.0001, anomalies[0].Value)
	assert.Equal(t, 7.9999, anomalies[1].Value)
}

func TestDetectAnomalies_PreservesInputOrder(t *testing.T) {
	s := models.Statistics{Average: 10, StandardDeviation: 1}
	points := pointsFromValues(50, 10, -50, 10, 50)

	anomalies := DetectAnomalies(points, s, 2.0)

	require.Len(t, anomalies, 3)
	assert.Equal(t, 50.0, anomalies[0].Value)
	assert.Equal(t, -50.0, anomalies[1].Value)
	assert.Equal(t, 50.0, anomalies[2].Value)
}

func TestDetectAnomalies_EmptyInput(t *testing.T) {
	anomalies := DetectAnomalies(nil, models.Statistics{Average: 10, StandardDeviation: 1}, 2.0)
	assert.Empty(t, anomalies)
}
