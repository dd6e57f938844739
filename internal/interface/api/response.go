package api

import (
	"errors"
	"net/http"

	"checkin-service/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success      bool             `json:"success"`
	Flight       *entity.Flight   `json:"flight,omitempty"`
	Flights      []*entity.Flight `json:"flights,omitempty"`
	Data         interface{}      `json:"data,omitempty"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
}

// respondError maps the error taxonomy onto HTTP statuses and the envelope.
// Full detail is logged server-side; the client only ever sees the curated
// message.
func (s *Server) respondError(c *gin.Context, operation string, err error) {
	s.logger.Error("Request failed", "operation", operation, "error", err)

	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: validationErr.Error()})
		return
	}

	// Resolver and scheduling failures are expected outcomes of a submission
	// attempt; the envelope carries the verdict, not the transport status.
	var resolverErr *entity.ResolverError
	if errors.As(err, &resolverErr) {
		c.JSON(http.StatusOK, Response{Success: false, ErrorMessage: resolverErr.Message})
		return
	}
	var schedulingErr *entity.SchedulingError
	if errors.As(err, &schedulingErr) {
		c.JSON(http.StatusOK, Response{Success: false, ErrorMessage: schedulingErr.Message})
		return
	}

	var cancellationErr *entity.CancellationError
	if errors.As(err, &cancellationErr) {
		c.JSON(http.StatusInternalServerError, Response{Success: false, ErrorMessage: cancellationErr.Error()})
		return
	}

	var callbackErr *entity.CallbackNotFoundError
	if errors.As(err, &callbackErr) {
		c.JSON(http.StatusInternalServerError, Response{Success: false, ErrorMessage: callbackErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{Success: false, ErrorMessage: "Internal error."})
}
