package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight record persistence
type FlightRepository interface {
	Create(ctx context.Context, flight *entity.Flight) error
	// FindByID resolves a flight by id, including soft-deleted records.
	FindByID(ctx context.Context, id string) (*entity.Flight, error)
	// FindByJobID resolves a flight by its scheduler job id, including
	// soft-deleted records, so late callbacks still correlate.
	FindByJobID(ctx context.Context, jobID string) (*entity.Flight, error)
	// ListActive returns non-deleted flights sorted by departure time
	// descending.
	ListActive(ctx context.Context) ([]*entity.Flight, error)
	SetSchedule(ctx context.Context, id string, jobID string, status entity.CheckinStatus) error
	SetCheckinOutcome(ctx context.Context, id string, status entity.CheckinStatus, boardingPosition string, checkinError string) error
	SoftDelete(ctx context.Context, id string) error
	// Delete removes a row permanently. Used to compensate a failed
	// scheduling call.
	Delete(ctx context.Context, id string) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
