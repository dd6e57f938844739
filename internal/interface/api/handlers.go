package api

import (
	"net/http"
	"strconv"

	"checkin-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxAudioUploadSize = 25 << 20 // provider caps uploads at 25MB

func (s *Server) handleListFlights(c *gin.Context) {
	flights, err := s.lifecycle.List(c.Request.Context())
	if err != nil {
		s.respondError(c, "listFlights", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Flights: flights})
}

func (s *Server) handleCreateFlight(c *gin.Context) {
	var req usecase.CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: "Malformed request body."})
		return
	}

	flight, err := s.lifecycle.Create(c.Request.Context(), &req)
	if err != nil {
		s.respondError(c, "createFlight", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Flight: flight})
}

func (s *Server) handleCancelFlight(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: "Did not find `id` in request body"})
		return
	}

	flight, err := s.lifecycle.Cancel(c.Request.Context(), req.ID)
	if err != nil {
		s.respondError(c, "cancelFlight", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Flight: flight})
}

func (s *Server) handleCheckinCallback(c *gin.Context) {
	var callback usecase.CheckinCallback
	if err := c.ShouldBindJSON(&callback); err != nil || callback.JobID == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: "Malformed callback payload."})
		return
	}

	if err := s.lifecycle.HandleCheckinResult(c.Request.Context(), &callback); err != nil {
		s.respondError(c, "checkinCallback", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

func (s *Server) handleFlightDetailsCallback(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: "Malformed callback payload."})
		return
	}

	if err := s.lifecycle.HandleFlightDetails(c.Request.Context(), payload); err != nil {
		s.respondError(c, "flightDetailsCallback", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

func (s *Server) handleRecentJournal(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := s.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, "recentJournal", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}

func (s *Server) handleJournal(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: "Did not find `message` in request body"})
		return
	}

	entry, err := s.journal.SubmitText(c.Request.Context(), req.Message)
	if err != nil {
		s.respondError(c, "journal", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entry})
}

func (s *Server) handleTranscribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioUploadSize)

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, ErrorMessage: "Did not find `audio` file in request"})
		return
	}
	defer file.Close()

	entry, err := s.journal.SubmitAudio(c.Request.Context(), header.Filename, file)
	if err != nil {
		s.respondError(c, "transcribe", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entry})
}
