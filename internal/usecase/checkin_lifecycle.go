package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/metrics"
	"checkin-service/pkg/utils"
	"checkin-service/templates"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateFlightRequest carries the form fields for a new check-in request.
type CreateFlightRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" validate:"required"`
	FirstName          string `json:"firstName" validate:"required"`
	LastName           string `json:"lastName" validate:"required"`
	FlightNumber       int    `json:"flightNumber" validate:"min=0,max=9999"`
	FlightDate         string `json:"flightDate" validate:"required"`
	Email              string `json:"email" validate:"omitempty,email"`
	PhoneNumber        string `json:"phoneNumber" validate:"omitempty,numeric,len=10"`
}

// CheckinCallback is the payload the scheduler's worker posts back once the
// check-in job has run.
type CheckinCallback struct {
	JobID  string               `json:"jobId"`
	Result entity.CheckinResult `json:"result"`
}

// CheckinLifecycle orchestrates the flight check-in state machine: create,
// enrich, schedule, consume callbacks, cancel.
type CheckinLifecycle struct {
	flightRepo  repository.FlightRepository
	detailRepo  repository.FlightDetailRepository
	scheduler   repository.SchedulerRepository
	validate    *validator.Validate
	callbackURL string
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewCheckinLifecycle creates a new check-in lifecycle controller.
// callbackBaseURL is the externally reachable base URL of this service.
func NewCheckinLifecycle(
	flightRepo repository.FlightRepository,
	detailRepo repository.FlightDetailRepository,
	scheduler repository.SchedulerRepository,
	callbackBaseURL string,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *CheckinLifecycle {
	return &CheckinLifecycle{
		flightRepo:  flightRepo,
		detailRepo:  detailRepo,
		scheduler:   scheduler,
		validate:    validator.New(),
		callbackURL: callbackBaseURL + "/flights/checkinCallback",
		metrics:     metrics,
		logger:      logger,
	}
}

// Create validates a submission, enriches it with provider schedule data,
// persists it, and books the check-in job. Creation is atomic: when the
// resolver fails nothing is persisted, and when scheduling fails the freshly
// created record is deleted again.
func (c *CheckinLifecycle) Create(ctx context.Context, req *CreateFlightRequest) (*entity.Flight, error) {
	start := time.Now()

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	flightDate, err := utils.ParseFlightDate(req.FlightDate)
	if err != nil {
		return nil, &entity.ValidationError{Fields: map[string]string{
			"flightDate": "must be a parseable date, e.g. 2024-06-01 08:00am",
		}}
	}

	details, err := c.detailRepo.Lookup(ctx, req.FlightNumber, flightDate)
	if err != nil {
		c.logger.Error("Flight lookup failed", "flightNumber", req.FlightNumber, "error", err)
		c.metrics.ErrorsCount.WithLabelValues("resolve").Inc()
		return nil, err
	}

	departureTime := details.DepartureTime
	arrivalTime := details.ArrivalTime
	flight := &entity.Flight{
		ID:                 uuid.NewString(),
		ConfirmationNumber: req.ConfirmationNumber,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		FlightNumber:       req.FlightNumber,
		FlightDate:         req.FlightDate,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		DepartureAirport:   details.DepartureAirport,
		DepartureTime:      &departureTime,
		ArrivalAirport:     details.ArrivalAirport,
		ArrivalTime:        &arrivalTime,
		FlightDuration:     details.FlightDuration,
	}

	if err := c.flightRepo.Create(ctx, flight); err != nil {
		c.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		return nil, fmt.Errorf("failed to save flight: %w", err)
	}

	checkinAt := utils.CheckinTime(details.DepartureTime)
	c.logger.Info("Scheduling check-in",
		"flightId", flight.ID,
		"departure", details.DepartureTime.Format(time.RFC3339),
		"checkinAt", checkinAt.Format(time.RFC3339))

	jobID, err := c.scheduler.Schedule(ctx, &entity.ScheduleJob{
		Name:        templates.CheckinJobName(flight.FirstName, flight.FlightDate, flight.DepartureAirport, flight.ArrivalAirport),
		TaskScript:  entity.TaskCheckin,
		ScheduleAt:  &checkinAt,
		CallbackURL: c.callbackURL,
		Data: entity.CheckinJobData{
			ConfirmationNumber: flight.ConfirmationNumber,
			FirstName:          flight.FirstName,
			LastName:           flight.LastName,
			PhoneNumber:        flight.PhoneNumber,
			Email:              flight.Email,
		},
	})
	if err != nil {
		// Compensate: a flight without a booked job must not linger.
		if deleteErr := c.flightRepo.Delete(ctx, flight.ID); deleteErr != nil {
			c.logger.Error("Failed to roll back flight after scheduling error", "flightId", flight.ID, "error", deleteErr)
		}
		c.metrics.ErrorsCount.WithLabelValues("schedule").Inc()

		var schedulingErr *entity.SchedulingError
		if errors.As(err, &schedulingErr) {
			return nil, &entity.SchedulingError{
				Message: fmt.Sprintf("SCHEDULING CHECK-IN FAILED: %s. Flight must be at least 24 hours away.", schedulingErr.Message),
			}
		}
		return nil, err
	}

	if err := c.flightRepo.SetSchedule(ctx, flight.ID, jobID, entity.CheckinScheduled); err != nil {
		return nil, fmt.Errorf("failed to record job id: %w", err)
	}

	scheduled := entity.CheckinScheduled
	flight.CheckinJobID = &jobID
	flight.CheckinStatus = &scheduled

	c.metrics.FlightsCreated.Inc()
	c.metrics.CreateDuration.Observe(time.Since(start).Seconds())
	c.logger.Info("Flight check-in scheduled", "flightId", flight.ID, "jobId", jobID)

	return flight, nil
}

// List returns all active flights sorted by departure time descending.
func (c *CheckinLifecycle) List(ctx context.Context) ([]*entity.Flight, error) {
	return c.flightRepo.ListActive(ctx)
}

// Cancel soft-deletes a flight and, when a job is still active on the
// scheduler side, cancels it there too. The soft-delete sticks even when the
// external cancellation fails: once the user has asked to cancel, local
// state is authoritative and the failure is surfaced instead of undone.
func (c *CheckinLifecycle) Cancel(ctx context.Context, id string) (*entity.Flight, error) {
	flight, err := c.flightRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find flight %s: %w", id, err)
	}

	if err := c.flightRepo.SoftDelete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to cancel flight %s: %w", id, err)
	}
	now := time.Now()
	flight.DeletedAt = &now

	c.metrics.FlightsCancelled.Inc()

	// A finished check-in has no live job left to cancel; the soft-delete
	// alone retires the record.
	if flight.CheckinJobID != nil && (flight.CheckinStatus == nil || flight.CheckinStatus.IsCancelable()) {
		if err := c.scheduler.Cancel(ctx, *flight.CheckinJobID); err != nil {
			c.logger.Error("Scheduler cancellation failed, keeping local cancel", "flightId", id, "jobId", *flight.CheckinJobID, "error", err)
			c.metrics.ErrorsCount.WithLabelValues("cancel").Inc()
			return flight, err
		}
	}

	c.logger.Info("Flight cancelled", "flightId", id)

	return flight, nil
}

// HandleCheckinResult applies a check-in outcome reported by the scheduler's
// worker. Replayed callbacks overwrite with the same values, so delivery is
// idempotent.
func (c *CheckinLifecycle) HandleCheckinResult(ctx context.Context, callback *CheckinCallback) error {
	c.logger.Info("Received check-in callback", "jobId", callback.JobID, "success", callback.Result.Success)

	flight, err := c.flightRepo.FindByJobID(ctx, callback.JobID)
	if err != nil {
		c.metrics.ErrorsCount.WithLabelValues("callback").Inc()
		return &entity.CallbackNotFoundError{JobID: callback.JobID}
	}

	if callback.Result.Success {
		err = c.flightRepo.SetCheckinOutcome(ctx, flight.ID, entity.CheckinSucceeded, callback.Result.BoardingPosition, "")
		c.metrics.CheckinCallbacks.WithLabelValues("success").Inc()
	} else {
		err = c.flightRepo.SetCheckinOutcome(ctx, flight.ID, entity.CheckinFailed, "", callback.Result.ErrorMessage)
		c.metrics.CheckinCallbacks.WithLabelValues("failure").Inc()
	}
	if err != nil {
		return fmt.Errorf("failed to apply check-in result for flight %s: %w", flight.ID, err)
	}

	return nil
}

// HandleFlightDetails acknowledges an asynchronous flight detail callback.
// Enrichment currently happens synchronously during Create; this endpoint is
// the hook for a future asynchronous path and only logs what it gets.
func (c *CheckinLifecycle) HandleFlightDetails(ctx context.Context, payload map[string]interface{}) error {
	c.logger.Info("Received flight details callback", "payload", payload)
	return nil
}

func (c *CheckinLifecycle) validateRequest(req *CreateFlightRequest) error {
	err := c.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &entity.ValidationError{Fields: map[string]string{"request": err.Error()}}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Field() {
		case "FlightNumber":
			fields["flightNumber"] = "must be 1-4 digits"
		case "Email":
			fields["email"] = "must be a valid email address"
		case "PhoneNumber":
			fields["phoneNumber"] = "must be 10 digits"
		case "FlightDate":
			fields["flightDate"] = "is required"
		case "ConfirmationNumber":
			fields["confirmationNumber"] = "is required"
		case "FirstName":
			fields["firstName"] = "is required"
		case "LastName":
			fields["lastName"] = "is required"
		default:
			fields[fieldErr.Field()] = "is invalid"
		}
	}

	return &entity.ValidationError{Fields: fields}
}
