package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
)

// FlightDetailRepository defines the interface for flight schedule lookups
// against the flight data provider. Lookup never panics or leaks provider
// exceptions; every failure comes back as an *entity.ResolverError.
type FlightDetailRepository interface {
	Lookup(ctx context.Context, flightNumber int, departureDate time.Time) (*entity.FlightDetails, error)
}
