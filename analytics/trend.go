package analytics

import (
	"fmt"

	"inspection-analytics/models"
)

// dominanceRatio is the fraction of same-signed differences required before
// a sequence counts as directional rather than fluctuating.
const dominanceRatio = 0.6

// DetectTrend classifies a value sequence as increasing, decreasing, stable
// or fluctuating. A smoothingFactor in (0, 1] applies exponential smoothing
// before the first differences are taken; any other value means the raw
// sequence is classified directly.
func DetectTrend(values []float64, smoothingFactor float64) models.Trend {
	if len(values) <= 1 {
		return models.TrendStable
	}

	series := values
	if smoothingFactor > 0 && smoothingFactor <= 1 {
		series = Smooth(values, smoothingFactor)
	}

	var up, down, flat int
	for i := 0; i < len(series)-1; i++ {
		diff := series[i+1] - series[i]
		switch {
		case diff > 0:
			up++
		case diff < 0:
			down++
		default:
			flat++
		}
	}

	total := float64(len(series) - 1)
	switch {
	case float64(up)/total > dominanceRatio:
		return models.TrendIncreasing
	case float64(down)/total > dominanceRatio:
		return models.TrendDecreasing
	case float64(flat)/total > dominanceRatio:
		return models.TrendStable
	default:
		return models.TrendFluctuating
	}
}

// Smooth applies simple exponential smoothing with factor alpha.
func Smooth(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	smoothed := make([]float64, len(values))
	smoothed[0] = values[0]
	for i := 1; i < len(values); i++ {
		smoothed[i] = alpha*values[i] + (1-alpha)*smoothed[i-1]
	}
	return smoothed
}

// TrendConfidence scores how much the classification can be trusted.
// High variability relative to the mean erodes confidence, a fluctuating
// classification erodes it further, and falling below the caller's
// threshold erodes it once more. The result is clamped to [0, 1].
// A zero mean makes the variability ratio undefined, so confidence is 0.
func TrendConfidence(s models.Statistics, trend models.Trend, confidenceThreshold float64) float64 {
	if s.Average == 0 {
		return 0
	}

	confidence := 1.0

	penalty := 1 - s.StandardDeviation/s.Average
	if penalty < 0 {
		penalty = 0
	}
	confidence *= penalty

	if trend == models.TrendFluctuating {
		confidence *= 0.7
	}

	if confidence < confidenceThreshold {
		confidence *= 0.8
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// AnalyzeTrends runs the full analysis pipeline for one reading history:
// summary statistics, trend classification, confidence scoring and anomaly
// detection. The history's values must already be in chronological order;
// the period is taken from the first and last timestamps as given.
func AnalyzeTrends(history models.ReadingHistory, opts models.AnalysisOptions) (*models.TrendAnalysis, error) {
	if len(history.Values) < opts.MinDataPoints {
		return nil, fmt.Errorf("%w: trend analysis requires %d data points, got %d",
			ErrInsufficientData, opts.MinDataPoints, len(history.Values))
	}

	values := history.Floats()

	statistics, err := CalculateStatistics(values)
	if err != nil {
		return nil, err
	}

	trend := DetectTrend(values, opts.SmoothingFactor)
	confidence := TrendConfidence(statistics, trend, opts.ConfidenceThreshold)
	anomalies := DetectAnomalies(history.Values, statistics, opts.AnomalyThreshold)

	start, end := history.Period()

	return &models.TrendAnalysis{
		ReadingID:  history.ReadingID,
		Period:     models.Period{Start: start, End: end},
		Statistics: statistics,
		Trend:      trend,
		Confidence: confidence,
		Anomalies:  anomalies,
	}, nil
}
