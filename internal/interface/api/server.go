package api

import (
	"context"
	"io"
	"net/http"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/usecase"
	"checkin-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LifecycleService is the slice of the check-in lifecycle controller the
// HTTP surface needs.
type LifecycleService interface {
	Create(ctx context.Context, req *usecase.CreateFlightRequest) (*entity.Flight, error)
	List(ctx context.Context) ([]*entity.Flight, error)
	Cancel(ctx context.Context, id string) (*entity.Flight, error)
	HandleCheckinResult(ctx context.Context, callback *usecase.CheckinCallback) error
	HandleFlightDetails(ctx context.Context, payload map[string]interface{}) error
}

// JournalService is the slice of the journal processor the HTTP surface
// needs.
type JournalService interface {
	SubmitText(ctx context.Context, message string) (*entity.JournalEntry, error)
	SubmitAudio(ctx context.Context, filename string, audio io.Reader) (*entity.JournalEntry, error)
	Recent(ctx context.Context, limit int) ([]*entity.JournalEntry, error)
}

// Server wires the HTTP routes to the usecases
type Server struct {
	lifecycle LifecycleService
	journal   JournalService
	logger    logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(lifecycle LifecycleService, journal JournalService, logger logger.Logger) *Server {
	return &Server{
		lifecycle: lifecycle,
		journal:   journal,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Every endpoint accepts exactly its documented method; anything else
	// gets the uniform envelope with a 405.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, Response{Success: false, ErrorMessage: "Method not allowed."})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Success: false, ErrorMessage: "Not found."})
	})

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	flights := router.Group("/flights")
	{
		flights.GET("", s.handleListFlights)
		flights.POST("", s.handleCreateFlight)
		flights.POST("/cancel", s.handleCancelFlight)
		flights.POST("/checkinCallback", s.handleCheckinCallback)
		flights.POST("/flightDetailsCallback", s.handleFlightDetailsCallback)
	}

	journal := router.Group("/journal")
	{
		journal.GET("", s.handleRecentJournal)
		journal.POST("", s.handleJournal)
		journal.POST("/transcribe", s.handleTranscribe)
	}

	return router
}
