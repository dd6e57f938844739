package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"

	"github.com/google/uuid"
)

// FridaySchedulerRepository submits and cancels jobs on the Friday server
type FridaySchedulerRepository struct {
	logger  logger.Logger
	baseURL string
	secret  string
	client  *http.Client
}

// NewFridaySchedulerRepository creates a new Friday scheduler repository
func NewFridaySchedulerRepository(baseURL, secret string, logger logger.Logger) repository.SchedulerRepository {
	return &FridaySchedulerRepository{
		logger:  logger,
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type fridayJobRequest struct {
	Name        string `json:"name"`
	TaskScript  string `json:"taskScript"`
	ScheduleAt  string `json:"scheduleAt,omitempty"`
	CallbackURL string `json:"callbackUrl"`
	Data        string `json:"data"`
	Secret      string `json:"secret"`
	// Lets the server dedupe a resubmitted job after a transport failure.
	IdempotencyKey string `json:"idempotencyKey"`
}

type fridayJobResponse struct {
	ID    string `json:"id"`
	JobID string `json:"jobId"`
}

// Schedule submits a job to the Friday server and returns the job id. An
// omitted ScheduleAt means the job runs immediately. The submission is
// retried once on transport errors, keyed by a client-generated idempotency
// key.
func (r *FridaySchedulerRepository) Schedule(ctx context.Context, job *entity.ScheduleJob) (string, error) {
	data, err := json.Marshal(job.Data)
	if err != nil {
		return "", &entity.SchedulingError{Message: fmt.Sprintf("failed to marshal job data: %v", err)}
	}

	request := fridayJobRequest{
		Name:           job.Name,
		TaskScript:     job.TaskScript,
		CallbackURL:    job.CallbackURL,
		Data:           string(data),
		Secret:         r.secret,
		IdempotencyKey: uuid.NewString(),
	}
	if job.ScheduleAt != nil {
		request.ScheduleAt = job.ScheduleAt.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", &entity.SchedulingError{Message: fmt.Sprintf("failed to marshal job request: %v", err)}
	}

	r.logger.Info("Scheduling job",
		"name", job.Name,
		"taskScript", job.TaskScript,
		"scheduleAt", request.ScheduleAt)

	resp, err := r.post(ctx, r.baseURL+"/jobs", body)
	if err != nil {
		// One retry on transport errors only. The idempotency key keeps a
		// request that actually landed from booking the job twice.
		r.logger.Warn("Job submission failed, retrying once", "error", err)
		resp, err = r.post(ctx, r.baseURL+"/jobs", body)
	}
	if err != nil {
		return "", &entity.SchedulingError{Message: fmt.Sprintf("scheduler unreachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		errText, _ := io.ReadAll(resp.Body)
		r.logger.Error("Scheduler rejected job", "status", resp.StatusCode, "body", string(errText))
		return "", &entity.SchedulingError{Message: string(errText)}
	}

	var response fridayJobResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", &entity.SchedulingError{Message: fmt.Sprintf("failed to decode scheduler response: %v", err)}
	}

	jobID := response.ID
	if jobID == "" {
		jobID = response.JobID
	}
	if jobID == "" {
		return "", &entity.SchedulingError{Message: "scheduler response carried no job id"}
	}

	r.logger.Info("Job scheduled", "jobId", jobID, "name", job.Name)

	return jobID, nil
}

// Cancel asks the Friday server to drop a scheduled job
func (r *FridaySchedulerRepository) Cancel(ctx context.Context, jobID string) error {
	body, err := json.Marshal(map[string]string{
		"id":     jobID,
		"secret": r.secret,
	})
	if err != nil {
		return &entity.CancellationError{JobID: jobID, Message: err.Error()}
	}

	resp, err := r.post(ctx, r.baseURL+"/jobs/cancel", body)
	if err != nil {
		return &entity.CancellationError{JobID: jobID, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		r.logger.Error("Scheduler refused cancellation", "jobId", jobID, "status", resp.StatusCode, "body", string(errText))
		return &entity.CancellationError{JobID: jobID, Message: string(errText)}
	}

	r.logger.Info("Job cancelled", "jobId", jobID)

	return nil
}

func (r *FridaySchedulerRepository) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return r.client.Do(req)
}
