package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"inspection-analytics/analytics"
	"inspection-analytics/config"
	"inspection-analytics/models"
)

// AnalysisHandler serves the synchronous analysis endpoints. The caller
// supplies fully materialized histories or entries in the request body; the
// handler runs the pure analytics functions and returns the derived result.
type AnalysisHandler struct {
	defaults models.AnalysisOptions
}

func NewAnalysisHandler(cfg config.AnalyticsConfig) *AnalysisHandler {
	return &AnalysisHandler{
		defaults: models.AnalysisOptions{
			MinDataPoints:       cfg.MinDataPoints,
			AnomalyThreshold:    cfg.AnomalyThreshold,
			SmoothingFactor:     cfg.SmoothingFactor,
			ConfidenceThreshold: cfg.ConfidenceThreshold,
		},
	}
}

type analyzeRequest struct {
	History models.ReadingHistory   `json:"history"`
	Options *models.AnalysisOptions `json:"options,omitempty"`
}

type compareRequest struct {
	Histories []models.ReadingHistory  `json:"histories"`
	Options   models.ComparisonOptions `json:"options"`
}

type reportRequest struct {
	Entries     []models.HistoryEntry     `json:"entries"`
	Trends      []models.TrendAnalysis    `json:"trends,omitempty"`
	Comparisons []models.ComparisonResult `json:"comparisons,omitempty"`
	Metadata    map[string]string         `json:"metadata,omitempty"`
}

func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		requestDurationSeconds.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	}()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, r, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := req.History.Validate(); err != nil {
		writeStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts := h.defaults
	if req.Options != nil {
		opts = *req.Options
	}

	analysis, err := analytics.AnalyzeTrends(req.History, opts)
	if err != nil {
		writeAnalyticsError(w, r, "analyze", err)
		return
	}

	analysesTotal.WithLabelValues("analyze", "ok").Inc()
	writeJSON(w, r, analysis)
}

func (h *AnalysisHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		requestDurationSeconds.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	}()

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, r, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	for i := range req.Histories {
		if err := req.Histories[i].Validate(); err != nil {
			writeStatus(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := analytics.CompareReadings(req.Histories, req.Options)
	if err != nil {
		writeAnalyticsError(w, r, "compare", err)
		return
	}

	analysesTotal.WithLabelValues("compare", "ok").Inc()
	writeJSON(w, r, result)
}

func (h *AnalysisHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		requestDurationSeconds.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	}()

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStatus(w, r, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	for i := range req.Entries {
		if err := req.Entries[i].Validate(); err != nil {
			writeStatus(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	report, err := analytics.GenerateReport(req.Entries, analytics.ReportOptions{
		Trends:      req.Trends,
		Comparisons: req.Comparisons,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeAnalyticsError(w, r, "report", err)
		return
	}

	analysesTotal.WithLabelValues("report", "ok").Inc()
	writeJSON(w, r, report)
}

// writeAnalyticsError maps the core error taxonomy onto HTTP statuses:
// InsufficientData and NoData are unprocessable input, InvalidInput is a
// bad request, anything else is a server error.
func writeAnalyticsError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	analysesTotal.WithLabelValues(operation, "error").Inc()

	switch {
	case errors.Is(err, analytics.ErrInsufficientData), errors.Is(err, analytics.ErrNoData):
		writeStatus(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, analytics.ErrInvalidInput):
		writeStatus(w, r, http.StatusBadRequest, err.Error())
	default:
		writeStatus(w, r, http.StatusInternalServerError, err.Error())
	}
}

func writeStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, httpStatusLabel(status)).Inc()
	http.Error(w, message, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload interface{}) {
	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func httpStatusLabel(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "400"
	case http.StatusUnprocessableEntity:
		return "422"
	case http.StatusInternalServerError:
		return "500"
	default:
		return "200"
	}
}
