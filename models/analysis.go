package models

import (
	"time"
)

// Statistics summarizes a flat set of measurement values.
type Statistics struct {
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Average           float64 `json:"average"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standard_deviation"`
}

// Trend classifies the direction of a reading sequence over time.
type Trend string

const (
	TrendIncreasing  Trend = "INCREASING"
	TrendDecreasing  Trend = "DECREASING"
	TrendStable      Trend = "STABLE"
	TrendFluctuating Trend = "FLUCTUATING"
)

// Range is an expected value band.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Anomaly is a reading whose value fell outside the expected band.
type Anomaly struct {
	Timestamp     time.Time `json:"timestamp"`
	Value         float64   `json:"value"`
	ExpectedRange Range     `json:"expected_range"`
}

// Period bounds an analysis in time.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TrendAnalysis is the full derived snapshot for one reading history.
// It is constructed fresh per invocation and never mutated afterwards.
type TrendAnalysis struct {
	ReadingID  string     `json:"reading_id"`
	Period     Period     `json:"period"`
	Statistics Statistics `json:"statistics"`
	Trend      Trend      `json:"trend"`
	Confidence float64    `json:"confidence"`
	Anomalies  []Anomaly  `json:"anomalies"`
}

// AnalysisOptions controls trend analysis.
type AnalysisOptions struct {
	MinDataPoints       int     `json:"min_data_points"`
	AnomalyThreshold    float64 `json:"anomaly_threshold"`
	SmoothingFactor     float64 `json:"smoothing_factor"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// ComparisonMethod selects how similarity between histories is scored.
type ComparisonMethod string

const (
	CompareByValue   ComparisonMethod = "VALUE"
	CompareByTrend   ComparisonMethod = "TREND"
	CompareByPattern ComparisonMethod = "PATTERN"
)

// WeightFactors blends the similarity signals when more than one applies.
type WeightFactors struct {
	Value   float64 `json:"value"`
	Trend   float64 `json:"trend"`
	Pattern float64 `json:"pattern"`
}

// ComparisonOptions controls multi-history comparison.
type ComparisonOptions struct {
	Method           ComparisonMethod `json:"method"`
	Tolerance        float64          `json:"tolerance"`
	NormalizeData    bool             `json:"normalize_data"`
	IgnoreTimestamps bool             `json:"ignore_timestamps"`
	TimeTolerance    time.Duration    `json:"time_tolerance"`
	WeightFactors    *WeightFactors   `json:"weight_factors,omitempty"`
}

// Difference is one aligned row across the compared series.
type Difference struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
	Deviation float64            `json:"deviation"`
}

// ComparisonResult relates two or more reading histories.
type ComparisonResult struct {
	ReadingIDs      []string     `json:"reading_ids"`
	Period          Period       `json:"period"`
	Differences     []Difference `json:"differences"`
	Correlation     float64      `json:"correlation"`
	SimilarityScore float64      `json:"similarity_score"`
}
