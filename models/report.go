package models

import (
	"encoding/json"
	"errors"
	"time"
)

// ChangeType labels an audit-log entry.
type ChangeType string

const (
	ChangeCreate       ChangeType = "CREATE"
	ChangeUpdate       ChangeType = "UPDATE"
	ChangeDelete       ChangeType = "DELETE"
	ChangeStatusChange ChangeType = "STATUS_CHANGE"
)

var validChangeTypes = map[ChangeType]bool{
	ChangeCreate:       true,
	ChangeUpdate:       true,
	ChangeDelete:       true,
	ChangeStatusChange: true,
}

// HistoryEntry is an audit-log-shaped record produced elsewhere in the
// application. The analytics core only groups and counts these.
type HistoryEntry struct {
	EntityID   string          `json:"entity_id"`
	EntityType string          `json:"entity_type"`
	ChangeType ChangeType      `json:"change_type"`
	Timestamp  time.Time       `json:"timestamp"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

func (e *HistoryEntry) Validate() error {
	if e.EntityID == "" {
		return errors.New("entity_id is required")
	}

	if e.EntityType == "" {
		return errors.New("entity_type is required")
	}

	if !validChangeTypes[e.ChangeType] {
		return errors.New("unknown change_type")
	}

	if e.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}

	return nil
}

// ChangeSummary counts entries per change type.
type ChangeSummary struct {
	Total  int                `json:"total"`
	ByType map[ChangeType]int `json:"by_type"`
}

// HistoryReport aggregates history entries with optional embedded analyses.
type HistoryReport struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Period      Period             `json:"period"`
	Changes     ChangeSummary      `json:"changes"`
	Trends      []TrendAnalysis    `json:"trends,omitempty"`
	Comparisons []ComparisonResult `json:"comparisons,omitempty"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
}
