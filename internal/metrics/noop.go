package metrics

import (
	"time"

	"github.com/falci/falci/internal/model"
)

// NoopRecorder discards all metrics.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (*NoopRecorder) IncGenerated(model.FortuneType)                               {}
func (*NoopRecorder) IncGenerationFailed(model.FortuneType)                        {}
func (*NoopRecorder) ObserveGenerationDuration(model.FortuneType, time.Duration)   {}
func (*NoopRecorder) IncFortuneSaved()                                             {}
func (*NoopRecorder) IncFortuneSaveFailed()                                        {}
func (*NoopRecorder) IncFortuneDeleted()                                           {}
