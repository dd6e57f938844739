package repository

import (
	"context"

	"checkin-service/internal/domain/entity"
)

// SchedulerRepository defines the interface for the external job scheduler
type SchedulerRepository interface {
	// Schedule submits a job and returns the scheduler's job id.
	Schedule(ctx context.Context, job *entity.ScheduleJob) (string, error)
	Cancel(ctx context.Context, jobID string) error
}
