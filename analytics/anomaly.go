package analytics

import (
	"inspection-analytics/models"
)

// DetectAnomalies flags points whose values fall strictly outside the band
// average ± stdDev*threshold. Points exactly on a band edge are not
// anomalous. Output order matches input order and an empty input yields an
// empty result rather than an error.
func DetectAnomalies(points []models.ReadingValue, s models.Statistics, threshold float64) []models.Anomaly {
	band := models.Range{
		Min: s.Average - s.StandardDeviation*threshold,
		Max: s.Average + s.StandardDeviation*threshold,
	}

	var anomalies []models.Anomaly
	for _, p := range points {
		if p.Value < band.Min || p.Value > band.Max {
			anomalies = append(anomalies, models.Anomaly{
				Timestamp:     p.Timestamp,
				Value:         p.Value,
				ExpectedRange: band,
			})
		}
	}

	return anomalies
}
