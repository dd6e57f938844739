package worker

import (
	"context"
	"time"

	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
)

// PurgeWorker permanently removes soft-deleted flights once they are old
// enough that no late callback could still reference them.
type PurgeWorker struct {
	flightRepo repository.FlightRepository
	retention  time.Duration
	schedule   string
	logger     logger.Logger
}

// NewPurgeWorker creates a new purge worker
func NewPurgeWorker(flightRepo repository.FlightRepository, retention time.Duration, schedule string, logger logger.Logger) *PurgeWorker {
	return &PurgeWorker{
		flightRepo: flightRepo,
		retention:  retention,
		schedule:   schedule,
		logger:     logger,
	}
}

func (w *PurgeWorker) Name() string {
	return "flight-purge"
}

func (w *PurgeWorker) Schedule() string {
	return w.schedule
}

func (w *PurgeWorker) Execute(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)

	purged, err := w.flightRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		w.logger.Error("Failed to purge cancelled flights", "error", err)
		return
	}

	if purged > 0 {
		w.logger.Info("Purged cancelled flights", "count", purged, "cutoff", cutoff.Format(time.RFC3339))
	}
}
