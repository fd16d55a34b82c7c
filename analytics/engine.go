package analytics

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"

	"inspection-analytics/cache"
	"inspection-analytics/config"
	"inspection-analytics/models"
	"inspection-analytics/store"
)

// AnomalyCallback fires once per analysis that flagged anomalies.
type AnomalyCallback func(readingID string, count int)

// Engine drives the analysis pipeline for ingested readings. Submissions
// are buffered on a channel and drained by a fixed worker pool; once a
// reading has accumulated enough points, every further submission refreshes
// its cached trend analysis.
type Engine struct {
	cache       *cache.RedisClient
	store       *store.HistoryStore
	opts        models.AnalysisOptions
	submissions chan models.ReadingSubmission
	onAnomaly   AnomalyCallback
	logger      zerolog.Logger
}

func NewEngine(cfg config.AnalyticsConfig, redisClient *cache.RedisClient, historyStore *store.HistoryStore, logger zerolog.Logger, onAnomaly AnomalyCallback) *Engine {
	engine := &Engine{
		cache: redisClient,
		store: historyStore,
		opts: models.AnalysisOptions{
			MinDataPoints:       cfg.MinDataPoints,
			AnomalyThreshold:    cfg.AnomalyThreshold,
			SmoothingFactor:     cfg.SmoothingFactor,
			ConfidenceThreshold: cfg.ConfidenceThreshold,
		},
		submissions: make(chan models.ReadingSubmission, 10000),
		onAnomaly:   onAnomaly,
		logger:      logger,
	}

	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU() * 2
	}
	if numWorkers < 4 {
		numWorkers = 4
	}
	if numWorkers > 16 {
		numWorkers = 16
	}

	logger.Info().Int("workers", numWorkers).Msg("starting analytics workers")
	for i := 0; i < numWorkers; i++ {
		go engine.drain()
	}

	return engine
}

// Submit queues one reading for analysis. When the channel is full the
// submission is dropped with a warning rather than blocking ingestion.
func (e *Engine) Submit(submission models.ReadingSubmission) {
	select {
	case e.submissions <- submission:
	default:
		e.logger.Warn().
			Str("reading_id", submission.ReadingID).
			Msg("submission channel full, dropping reading")
	}
}

func (e *Engine) drain() {
	for submission := range e.submissions {
		e.process(submission)
	}
}

func (e *Engine) process(submission models.ReadingSubmission) {
	count := e.store.Append(submission.ReadingID, submission.MaterialType, submission.EquipmentType, submission.Value)
	if count < e.opts.MinDataPoints {
		return
	}

	history, ok := e.store.History(submission.ReadingID)
	if !ok {
		return
	}

	analysis, err := AnalyzeTrends(history, e.opts)
	if err != nil {
		e.logger.Error().Err(err).
			Str("reading_id", submission.ReadingID).
			Msg("trend analysis failed")
		return
	}

	if err := e.cache.SaveAnalysis(context.Background(), analysis); err != nil {
		e.logger.Error().Err(err).
			Str("reading_id", submission.ReadingID).
			Msg("failed to cache analysis")
	}

	if len(analysis.Anomalies) > 0 {
		latest := analysis.Anomalies[len(analysis.Anomalies)-1]
		e.logger.Warn().
			Str("reading_id", submission.ReadingID).
			Int("anomalies", len(analysis.Anomalies)).
			Float64("value", latest.Value).
			Float64("band_min", latest.ExpectedRange.Min).
			Float64("band_max", latest.ExpectedRange.Max).
			Msg("anomalies detected")

		if e.onAnomaly != nil {
			e.onAnomaly(submission.ReadingID, len(analysis.Anomalies))
		}
	}
}
