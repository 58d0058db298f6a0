// Package metrics provides lightweight hooks for instrumentation.
package metrics

import (
	"time"

	"github.com/falci/falci/internal/model"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Generation pipeline metrics
	IncGenerated(typ model.FortuneType)
	IncGenerationFailed(typ model.FortuneType)
	ObserveGenerationDuration(typ model.FortuneType, duration time.Duration)

	// Persistence metrics
	IncFortuneSaved()
	IncFortuneSaveFailed()
	IncFortuneDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
