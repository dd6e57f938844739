package entity

import (
	"time"
)

// CheckinStatus is the lifecycle state of a flight check-in request.
type CheckinStatus int

const (
	CheckinSchedulingError CheckinStatus = 0
	CheckinScheduled       CheckinStatus = 1
	CheckinFailed          CheckinStatus = 2
	CheckinSucceeded       CheckinStatus = 3
)

// IsCancelable reports whether the external check-in job may still be
// cancelled. Once the worker has run (failed or succeeded) there is nothing
// left to cancel on the scheduler side.
func (s CheckinStatus) IsCancelable() bool {
	switch s {
	case CheckinSchedulingError, CheckinScheduled:
		return true
	}
	return false
}

func (s CheckinStatus) String() string {
	switch s {
	case CheckinSchedulingError:
		return "SCHEDULING_ERROR"
	case CheckinScheduled:
		return "SCHEDULED"
	case CheckinFailed:
		return "CHECKIN_FAILED"
	case CheckinSucceeded:
		return "CHECKIN_SUCCEEDED"
	}
	return "UNKNOWN"
}

// Flight is a flight check-in request. User-supplied fields come from the
// submission form; departure/arrival fields are filled in from the flight
// data provider before the record is first persisted.
type Flight struct {
	ID                 string `json:"id"`
	ConfirmationNumber string `json:"confirmationNumber"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	FlightNumber       int    `json:"flightNumber"`
	FlightDate         string `json:"flightDate"`
	Email              string `json:"email,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`

	DepartureAirport string     `json:"departureAirport,omitempty"`
	DepartureTime    *time.Time `json:"departureTime,omitempty"`
	ArrivalAirport   string     `json:"arrivalAirport,omitempty"`
	ArrivalTime      *time.Time `json:"arrivalTime,omitempty"`
	FlightDuration   string     `json:"flightDuration,omitempty"`

	CheckinStatus    *CheckinStatus `json:"checkinStatus,omitempty"`
	CheckinError     string         `json:"checkinError,omitempty"`
	CheckinJobID     *string        `json:"checkinJobId,omitempty"`
	BoardingPosition string         `json:"boardingPosition,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// FlightDetails is the provider's authoritative schedule data for one flight.
type FlightDetails struct {
	DepartureAirport string
	DepartureTime    time.Time
	ArrivalAirport   string
	ArrivalTime      time.Time
	FlightDuration   string
}
