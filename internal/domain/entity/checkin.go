package entity

import (
	"time"
)

// Task scripts understood by the Friday server.
const (
	TaskCheckin       = "southwestCheckin"
	TaskFlightDetails = "getSouthwestFlightDetails"
)

// ScheduleJob is a job submission for the external scheduler. A nil
// ScheduleAt means "run immediately".
type ScheduleJob struct {
	Name        string
	TaskScript  string
	ScheduleAt  *time.Time
	CallbackURL string
	Data        interface{}
}

// CheckinJobData is the payload forwarded to the check-in worker.
type CheckinJobData struct {
	ConfirmationNumber string `json:"confirmationNumber"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
	Email              string `json:"email,omitempty"`
}

// CheckinResult is the outcome reported back by the check-in worker.
type CheckinResult struct {
	Success          bool   `json:"success"`
	BoardingPosition string `json:"boardingPosition,omitempty"`
	ErrorMessage     string `json:"errorMessage,omitempty"`
}
