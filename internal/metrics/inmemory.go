package metrics

import (
	"sync"
	"time"

	"github.com/falci/falci/internal/model"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Generated                map[model.FortuneType]uint64 `json:"generated"`
	GenerationFailed         map[model.FortuneType]uint64 `json:"generation_failed"`
	GenerationDurationCount  uint64                       `json:"generation_duration_count"`
	GenerationDurationMillis int64                        `json:"generation_duration_total_ms"`
	FortunesSaved            uint64                       `json:"fortunes_saved"`
	FortuneSavesFailed       uint64                       `json:"fortune_saves_failed"`
	FortunesDeleted          uint64                       `json:"fortunes_deleted"`
}

// InMemoryRecorder stores counters in memory. Suitable for the /metrics
// snapshot endpoint and for tests.
type InMemoryRecorder struct {
	mu                 sync.Mutex
	generated          map[model.FortuneType]uint64
	generationFailed   map[model.FortuneType]uint64
	durationCount      uint64
	durationTotal      time.Duration
	fortunesSaved      uint64
	fortuneSavesFailed uint64
	fortunesDeleted    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		generated:        make(map[model.FortuneType]uint64),
		generationFailed: make(map[model.FortuneType]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Generated:                make(map[model.FortuneType]uint64, len(m.generated)),
		GenerationFailed:         make(map[model.FortuneType]uint64, len(m.generationFailed)),
		GenerationDurationCount:  m.durationCount,
		GenerationDurationMillis: m.durationTotal.Milliseconds(),
		FortunesSaved:            m.fortunesSaved,
		FortuneSavesFailed:       m.fortuneSavesFailed,
		FortunesDeleted:          m.fortunesDeleted,
	}
	for k, v := range m.generated {
		snap.Generated[k] = v
	}
	for k, v := range m.generationFailed {
		snap.GenerationFailed[k] = v
	}
	return snap
}

// IncGenerated counts one successful generation per fortune type.
func (m *InMemoryRecorder) IncGenerated(typ model.FortuneType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generated[typ]++
}

// IncGenerationFailed counts one failed generation per fortune type.
func (m *InMemoryRecorder) IncGenerationFailed(typ model.FortuneType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationFailed[typ]++
}

// ObserveGenerationDuration records one provider round-trip duration.
func (m *InMemoryRecorder) ObserveGenerationDuration(typ model.FortuneType, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationCount++
	m.durationTotal += duration
}

// IncFortuneSaved counts one persisted fortune.
func (m *InMemoryRecorder) IncFortuneSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fortunesSaved++
}

// IncFortuneSaveFailed counts one persistence failure after generation.
func (m *InMemoryRecorder) IncFortuneSaveFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fortuneSavesFailed++
}

// IncFortuneDeleted counts one deleted fortune.
func (m *InMemoryRecorder) IncFortuneDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fortunesDeleted++
}
