package analytics

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"inspection-analytics/models"
)

// CalculateStatistics computes the summary statistics for a flat set of
// measurement values. Standard deviation is the population form (divide
// by N); median of an even-length set is the mean of the two middle
// elements.
func CalculateStatistics(values []float64) (models.Statistics, error) {
	if len(values) == 0 {
		return models.Statistics{}, ErrNoData
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Statistics{}, fmt.Errorf("%w: non-finite value at index %d", ErrInvalidInput, i)
		}
	}

	data := stats.Float64Data(values)

	min, err := data.Min()
	if err != nil {
		return models.Statistics{}, err
	}

	max, err := data.Max()
	if err != nil {
		return models.Statistics{}, err
	}

	mean, err := data.Mean()
	if err != nil {
		return models.Statistics{}, err
	}

	median, err := data.Median()
	if err != nil {
		return models.Statistics{}, err
	}

	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return models.Statistics{}, err
	}

	return models.Statistics{
		Min:               min,
		Max:               max,
		Average:           mean,
		Median:            median,
		StandardDeviation: stdDev,
	}, nil
}
