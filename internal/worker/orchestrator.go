package worker

import (
	"context"

	"checkin-service/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Worker is a unit of scheduled maintenance work.
type Worker interface {
	Name() string
	Schedule() string
	Execute(ctx context.Context)
}

// Orchestrator runs workers on their cron schedules.
type Orchestrator struct {
	workers []Worker
	logger  logger.Logger
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(workers []Worker, logger logger.Logger) *Orchestrator {
	return &Orchestrator{
		workers: workers,
		logger:  logger,
	}
}

// Start registers all workers and starts the cron loop. Stop the returned
// cron to shut down.
func (o *Orchestrator) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()

	for _, w := range o.workers {
		w := w
		_, err := c.AddFunc(w.Schedule(), func() {
			o.logger.Info("Running worker", "worker", w.Name())
			w.Execute(ctx)
		})
		if err != nil {
			o.logger.Error("Failed to register worker", "worker", w.Name(), "error", err)
			return nil, err
		}
		o.logger.Info("Registered worker", "worker", w.Name(), "schedule", w.Schedule())
	}

	c.Start()
	return c, nil
}
