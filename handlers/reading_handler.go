package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"inspection-analytics/analytics"
	"inspection-analytics/cache"
	"inspection-analytics/config"
	"inspection-analytics/models"
	"inspection-analytics/store"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	anomaliesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anomalies_detected_total",
			Help: "Total number of anomalies detected",
		},
		[]string{"reading_id"},
	)

	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of analysis requests by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

type ReadingHandler struct {
	redisClient *cache.RedisClient
	engine      *analytics.Engine
}

func NewReadingHandler(cfg config.AnalyticsConfig, redisClient *cache.RedisClient, logger zerolog.Logger) *ReadingHandler {
	onAnomaly := func(readingID string, count int) {
		anomaliesDetectedTotal.WithLabelValues(readingID).Add(float64(count))
	}

	historyStore := store.NewHistoryStore(cfg.HistoryCapacity)

	return &ReadingHandler{
		redisClient: redisClient,
		engine:      analytics.NewEngine(cfg, redisClient, historyStore, logger, onAnomaly),
	}
}

func (h *ReadingHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	defer func() {
		duration := time.Since(start).Seconds()
		requestDurationSeconds.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	}()

	var submission models.ReadingSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "400").Inc()
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := submission.Validate(); err != nil {
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "400").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.engine.Submit(submission)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "accepted",
		"reading_id": submission.ReadingID,
	})

	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "202").Inc()
}

func (h *ReadingHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	readingID := mux.Vars(r)["readingId"]
	if readingID == "" {
		http.Error(w, "readingId is required", http.StatusBadRequest)
		return
	}

	analysis, err := h.redisClient.GetAnalysis(r.Context(), readingID)
	if err != nil {
		http.Error(w, "Failed to get analysis: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if analysis == nil {
		http.Error(w, "No analysis available for reading "+readingID, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
