package store

import (
	"sync"

	"inspection-analytics/models"
)

// ringBuffer keeps the most recent values for one reading point.
type ringBuffer struct {
	capacity int
	values   []models.ReadingValue
	index    int
	count    int
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{
		capacity: capacity,
		values:   make([]models.ReadingValue, capacity),
	}
}

func (rb *ringBuffer) add(value models.ReadingValue) {
	rb.values[rb.index] = value
	rb.index = (rb.index + 1) % rb.capacity
	if rb.count < rb.capacity {
		rb.count++
	}
}

// snapshot returns the buffered values oldest first.
func (rb *ringBuffer) snapshot() []models.ReadingValue {
	out := make([]models.ReadingValue, 0, rb.count)
	if rb.count < rb.capacity {
		out = append(out, rb.values[:rb.count]...)
		return out
	}
	out = append(out, rb.values[rb.index:]...)
	out = append(out, rb.values[:rb.index]...)
	return out
}

// HistoryStore holds the bounded in-memory reading histories the analysis
// pipeline runs against. Each reading keeps at most capacity values.
type HistoryStore struct {
	mu       sync.RWMutex
	capacity int
	buffers  map[string]*ringBuffer
	meta     map[string]readingMeta
}

type readingMeta struct {
	material  models.MaterialType
	equipment models.EquipmentType
}

func NewHistoryStore(capacity int) *HistoryStore {
	return &HistoryStore{
		capacity: capacity,
		buffers:  make(map[string]*ringBuffer),
		meta:     make(map[string]readingMeta),
	}
}

// Append records one value for a reading and returns the current count.
// Material and equipment tags are fixed by the first append and ignored on
// later ones.
func (s *HistoryStore) Append(readingID string, material models.MaterialType, equipment models.EquipmentType, value models.ReadingValue) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rb, ok := s.buffers[readingID]
	if !ok {
		rb = newRingBuffer(s.capacity)
		s.buffers[readingID] = rb
		s.meta[readingID] = readingMeta{material: material, equipment: equipment}
	}

	rb.add(value)
	return rb.count
}

// History returns a chronological copy of a reading's buffered values,
// or false if the reading is unknown.
func (s *HistoryStore) History(readingID string) (models.ReadingHistory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rb, ok := s.buffers[readingID]
	if !ok {
		return models.ReadingHistory{}, false
	}

	meta := s.meta[readingID]
	return models.ReadingHistory{
		ReadingID:     readingID,
		MaterialType:  meta.material,
		EquipmentType: meta.equipment,
		Values:        rb.snapshot(),
	}, true
}

// Len returns the number of buffered values for a reading.
func (s *HistoryStore) Len(readingID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rb, ok := s.buffers[readingID]
	if !ok {
		return 0
	}
	return rb.count
}

// ReadingIDs lists the readings currently tracked.
func (s *HistoryStore) ReadingIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.buffers))
	for id := range s.buffers {
		ids = append(ids, id)
	}
	return ids
}
