package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"inspection-analytics/models"
)

// alignedRow is one position at which every compared series has a value.
type alignedRow struct {
	timestamp time.Time
	values    []float64
}

// CompareReadings aligns two or more reading histories and computes their
// pairwise differences, correlation and similarity score.
//
// Alignment policy: with IgnoreTimestamps the series are zipped
// index-for-index and uneven lengths are silently truncated to the shortest
// series. Otherwise the first history's timestamps drive the rows and a row
// is emitted only when every other series has a point within TimeTolerance
// of it (nearest match wins).
func CompareReadings(histories []models.ReadingHistory, opts models.ComparisonOptions) (*models.ComparisonResult, error) {
	if len(histories) < 2 {
		return nil, fmt.Errorf("%w: comparison requires at least 2 histories, got %d",
			ErrInsufficientData, len(histories))
	}

	series := make([][]float64, len(histories))
	ids := make([]string, len(histories))
	for i, h := range histories {
		series[i] = h.Floats()
		ids[i] = h.ReadingID
	}

	if opts.NormalizeData {
		for i := range series {
			series[i] = normalize(series[i])
		}
	}

	var rows []alignedRow
	if opts.IgnoreTimestamps {
		rows = alignValuesByIndex(histories, series)
	} else {
		rows = alignValuesByTimestamp(histories, series, opts.TimeTolerance)
	}

	differences := rowDifferences(rows, ids, opts.Tolerance)
	correlation := averagePairwiseCorrelation(rows, len(histories))
	similarity := similarityScore(rows, series, correlation, opts)

	return &models.ComparisonResult{
		ReadingIDs:      ids,
		Period:          comparisonPeriod(histories),
		Differences:     differences,
		Correlation:     correlation,
		SimilarityScore: similarity,
	}, nil
}

// alignValuesByIndex zips the series positionally, truncating to the
// shortest one. Row timestamps come from the first history.
func alignValuesByIndex(histories []models.ReadingHistory, series [][]float64) []alignedRow {
	n := len(series[0])
	for _, s := range series[1:] {
		if len(s) < n {
			n = len(s)
		}
	}

	rows := make([]alignedRow, 0, n)
	for i := 0; i < n; i++ {
		row := alignedRow{values: make([]float64, len(series))}
		if i < len(histories[0].Values) {
			row.timestamp = histories[0].Values[i].Timestamp
		}
		for j := range series {
			row.values[j] = series[j][i]
		}
		rows = append(rows, row)
	}
	return rows
}

// alignValuesByTimestamp emits one row per timestamp of the first history
// at which every other series has a point within tolerance. The nearest
// point within tolerance is chosen per series.
func alignValuesByTimestamp(histories []models.ReadingHistory, series [][]float64, tolerance time.Duration) []alignedRow {
	var rows []alignedRow

	for i, anchor := range histories[0].Values {
		row := alignedRow{
			timestamp: anchor.Timestamp,
			values:    make([]float64, len(histories)),
		}
		row.values[0] = series[0][i]

		matched := true
		for j := 1; j < len(histories); j++ {
			idx := nearestWithin(histories[j].Values, anchor.Timestamp, tolerance)
			if idx < 0 {
				matched = false
				break
			}
			row.values[j] = series[j][idx]
		}

		if matched {
			rows = append(rows, row)
		}
	}

	return rows
}

// nearestWithin returns the index of the point closest to target, or -1 if
// none lies within tolerance.
func nearestWithin(points []models.ReadingValue, target time.Time, tolerance time.Duration) int {
	best := -1
	var bestDiff time.Duration

	for i := range points {
		diff := points[i].Timestamp.Sub(target)
		if diff < 0 {
			diff = -diff
		}

		if diff <= tolerance {
			if best < 0 || diff < bestDiff {
				best = i
				bestDiff = diff
			}
		}
	}

	return best
}

// rowDifferences reports the max-min spread per aligned row, dropping rows
// whose spread stays within tolerance.
func rowDifferences(rows []alignedRow, ids []string, tolerance float64) []models.Difference {
	var differences []models.Difference

	for _, row := range rows {
		lo, hi := row.values[0], row.values[0]
		for _, v := range row.values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		spread := hi - lo
		if spread <= tolerance {
			continue
		}

		values := make(map[string]float64, len(ids))
		for i, id := range ids {
			values[id] = row.values[i]
		}

		differences = append(differences, models.Difference{
			Timestamp: row.timestamp,
			Values:    values,
			Deviation: spread,
		})
	}

	return differences
}

// averagePairwiseCorrelation computes the mean Pearson coefficient over all
// series pairs at the aligned positions. A pair with a zero-variance side
// counts as 1 when the columns are identical and 0 otherwise.
func averagePairwiseCorrelation(rows []alignedRow, seriesCount int) float64 {
	if len(rows) < 2 {
		return 0
	}

	columns := make([][]float64, seriesCount)
	for i := range columns {
		columns[i] = make([]float64, len(rows))
	}
	for r, row := range rows {
		for c, v := range row.values {
			columns[c][r] = v
		}
	}

	var sum float64
	var pairs int
	for i := 0; i < seriesCount; i++ {
		for j := i + 1; j < seriesCount; j++ {
			sum += pairCorrelation(columns[i], columns[j])
			pairs++
		}
	}

	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func pairCorrelation(x, y []float64) float64 {
	r, err := stats.Pearson(x, y)
	if err != nil || math.IsNaN(r) {
		if equalSeries(x, y) {
			return 1
		}
		return 0
	}
	return r
}

func equalSeries(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// similarityScore computes the normalized similarity under the chosen
// method. When weight factors are supplied all three signals are blended
// as a normalized weighted sum.
func similarityScore(rows []alignedRow, series [][]float64, correlation float64, opts models.ComparisonOptions) float64 {
	if opts.WeightFactors != nil {
		w := opts.WeightFactors
		total := w.Value + w.Trend + w.Pattern
		if total <= 0 {
			return 0
		}
		blended := w.Value*valueSimilarity(rows) +
			w.Trend*trendSimilarity(series) +
			w.Pattern*patternSimilarity(correlation)
		return clamp01(blended / total)
	}

	switch opts.Method {
	case models.CompareByTrend:
		return trendSimilarity(series)
	case models.CompareByPattern:
		return patternSimilarity(correlation)
	default:
		return valueSimilarity(rows)
	}
}

// valueSimilarity maps the mean absolute spread across aligned rows into
// (0, 1], with 1 meaning the series never diverge.
func valueSimilarity(rows []alignedRow) float64 {
	if len(rows) == 0 {
		return 0
	}

	var total float64
	for _, row := range rows {
		lo, hi := row.values[0], row.values[0]
		for _, v := range row.values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		total += hi - lo
	}

	meanSpread := total / float64(len(rows))
	return 1 / (1 + meanSpread)
}

// trendSimilarity is the fraction of series pairs whose trend
// classifications agree.
func trendSimilarity(series [][]float64) float64 {
	trends := make([]models.Trend, len(series))
	for i, s := range series {
		trends[i] = DetectTrend(s, 0)
	}

	var agree, pairs int
	for i := 0; i < len(trends); i++ {
		for j := i + 1; j < len(trends); j++ {
			if trends[i] == trends[j] {
				agree++
			}
			pairs++
		}
	}

	if pairs == 0 {
		return 0
	}
	return float64(agree) / float64(pairs)
}

// patternSimilarity maps a correlation coefficient from [-1, 1] to [0, 1].
func patternSimilarity(correlation float64) float64 {
	return clamp01((correlation + 1) / 2)
}

// normalize min-max scales a series into [0, 1]. Constant series map to 0.
func normalize(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	scaled := make([]float64, len(values))
	if hi == lo {
		return scaled
	}
	for i, v := range values {
		scaled[i] = (v - lo) / (hi - lo)
	}
	return scaled
}

// comparisonPeriod spans from the earliest first timestamp to the latest
// last timestamp across the inputs.
func comparisonPeriod(histories []models.ReadingHistory) models.Period {
	var period models.Period
	for _, h := range histories {
		start, end := h.Period()
		if start.IsZero() {
			continue
		}
		if period.Start.IsZero() || start.Before(period.Start) {
			period.Start = start
		}
		if end.After(period.End) {
			period.End = end
		}
	}
	return period
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
