package models

import (
	"errors"
	"math"
	"time"
)

// MaterialType classifies the material a reading was taken from.
type MaterialType string

const (
	MaterialDrywall    MaterialType = "DRYWALL"
	MaterialCarpet     MaterialType = "CARPET"
	MaterialConcrete   MaterialType = "CONCRETE"
	MaterialHardwood   MaterialType = "HARDWOOD"
	MaterialInsulation MaterialType = "INSULATION"
)

// EquipmentType classifies the instrument that produced a reading.
type EquipmentType string

const (
	EquipmentMoistureMeter    EquipmentType = "MOISTURE_METER"
	EquipmentThermoHygrometer EquipmentType = "THERMO_HYGROMETER"
	EquipmentThermalCamera    EquipmentType = "THERMAL_CAMERA"
)

var validMaterials = map[MaterialType]bool{
	MaterialDrywall:    true,
	MaterialCarpet:     true,
	MaterialConcrete:   true,
	MaterialHardwood:   true,
	MaterialInsulation: true,
}

var validEquipment = map[EquipmentType]bool{
	EquipmentMoistureMeter:    true,
	EquipmentThermoHygrometer: true,
	EquipmentThermalCamera:    true,
}

// EnvironmentalConditions captures the ambient state at measurement time.
type EnvironmentalConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// ReadingValue is a single timestamped measurement.
type ReadingValue struct {
	Timestamp  time.Time               `json:"timestamp"`
	Value      float64                 `json:"value"`
	Confidence float64                 `json:"confidence"`
	Conditions EnvironmentalConditions `json:"environmental_conditions"`
}

// ReadingHistory is the time-ordered sequence of measurements for one
// physical point/instrument combination. Callers sort by timestamp before
// handing a history to the analytics functions; the analytics code treats
// input order as chronology.
type ReadingHistory struct {
	ReadingID     string         `json:"reading_id"`
	MaterialType  MaterialType   `json:"material_type"`
	EquipmentType EquipmentType  `json:"equipment_type"`
	Values        []ReadingValue `json:"values"`
}

func (h *ReadingHistory) Validate() error {
	if h.ReadingID == "" {
		return errors.New("reading_id is required")
	}

	if !validMaterials[h.MaterialType] {
		return errors.New("unknown material_type")
	}

	if !validEquipment[h.EquipmentType] {
		return errors.New("unknown equipment_type")
	}

	for i, v := range h.Values {
		if v.Timestamp.IsZero() {
			return errors.New("value timestamp is required")
		}

		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			return errors.New("value must be finite")
		}

		if v.Confidence < 0 || v.Confidence > 1 {
			return errors.New("confidence must be between 0 and 1")
		}

		if i > 0 && v.Timestamp.Before(h.Values[i-1].Timestamp) {
			return errors.New("values must be ordered by timestamp")
		}
	}

	return nil
}

// ReadingSubmission is one ingested measurement for a reading point.
type ReadingSubmission struct {
	ReadingID     string        `json:"reading_id"`
	MaterialType  MaterialType  `json:"material_type"`
	EquipmentType EquipmentType `json:"equipment_type"`
	Value         ReadingValue  `json:"value"`
}

func (s *ReadingSubmission) Validate() error {
	if s.ReadingID == "" {
		return errors.New("reading_id is required")
	}

	if !validMaterials[s.MaterialType] {
		return errors.New("unknown material_type")
	}

	if !validEquipment[s.EquipmentType] {
		return errors.New("unknown equipment_type")
	}

	if s.Value.Timestamp.IsZero() {
		return errors.New("value timestamp is required")
	}

	if math.IsNaN(s.Value.Value) || math.IsInf(s.Value.Value, 0) {
		return errors.New("value must be finite")
	}

	if s.Value.Confidence < 0 || s.Value.Confidence > 1 {
		return errors.New("confidence must be between 0 and 1")
	}

	return nil
}

// Floats returns the raw measurement values in input order.
func (h *ReadingHistory) Floats() []float64 {
	values := make([]float64, len(h.Values))
	for i, v := range h.Values {
		values[i] = v.Value
	}
	return values
}

// Period returns the first and last timestamps of the history.
// Zero times are returned for an empty history.
func (h *ReadingHistory) Period() (start, end time.Time) {
	if len(h.Values) == 0 {
		return time.Time{}, time.Time{}
	}
	return h.Values[0].Timestamp, h.Values[len(h.Values)-1].Timestamp
}
