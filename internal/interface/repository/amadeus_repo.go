package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/utils"
)

const (
	msgNoFlightFound = "NO FLIGHT FOUND: Double check flight number and date"
	msgPastDate      = "INVALID DATE: Date cannot be in the past."
)

// AmadeusFlightDetailRepository looks up authoritative schedule details from
// the Amadeus On-Demand Flight Status API.
type AmadeusFlightDetailRepository struct {
	logger      logger.Logger
	baseURL     string
	carrierCode string
	client      *http.Client
}

// NewAmadeusFlightDetailRepository creates a new Amadeus flight detail
// repository. The client is expected to inject bearer tokens (see
// oauth.AmadeusOAuth).
func NewAmadeusFlightDetailRepository(baseURL, carrierCode string, client *http.Client, logger logger.Logger) repository.FlightDetailRepository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &AmadeusFlightDetailRepository{
		logger:      logger,
		baseURL:     baseURL,
		carrierCode: carrierCode,
		client:      client,
	}
}

type amadeusScheduleResponse struct {
	Data []struct {
		FlightPoints []struct {
			IataCode  string `json:"iataCode"`
			Departure *struct {
				Timings []struct {
					Value string `json:"value"`
				} `json:"timings"`
			} `json:"departure"`
			Arrival *struct {
				Timings []struct {
					Value string `json:"value"`
				} `json:"timings"`
			} `json:"arrival"`
		} `json:"flightPoints"`
		Segments []struct {
			ScheduledSegmentDuration string `json:"scheduledSegmentDuration"`
		} `json:"segments"`
	} `json:"data"`
	Errors []amadeusError `json:"errors"`
}

type amadeusError struct {
	Title  string `json:"title"`
	Code   int    `json:"code"`
	Detail string `json:"detail"`
}

// Lookup fetches departure and arrival details for one flight. Every failure
// path returns *entity.ResolverError; provider errors never propagate raw.
func (r *AmadeusFlightDetailRepository) Lookup(ctx context.Context, flightNumber int, departureDate time.Time) (*entity.FlightDetails, error) {
	endpoint := fmt.Sprintf("%s/v2/schedule/flights", r.baseURL)
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &entity.ResolverError{Message: fmt.Sprintf("invalid provider URL: %v", err)}
	}

	q := u.Query()
	q.Set("carrierCode", r.carrierCode)
	q.Set("flightNumber", strconv.Itoa(flightNumber))
	q.Set("scheduledDepartureDate", utils.FormatScheduledDepartureDate(departureDate))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, &entity.ResolverError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	r.logger.Info("Looking up flight schedule",
		"carrier", r.carrierCode,
		"flightNumber", flightNumber,
		"date", utils.FormatScheduledDepartureDate(departureDate))

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Flight data provider unreachable", "error", err)
		return nil, &entity.ResolverError{Message: fmt.Sprintf("flight data provider unreachable: %v", err)}
	}
	defer resp.Body.Close()

	var body amadeusScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.logger.Error("Failed to decode provider response", "status", resp.StatusCode, "error", err)
		return nil, &entity.ResolverError{Message: fmt.Sprintf("failed to decode provider response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK || len(body.Errors) > 0 {
		return nil, &entity.ResolverError{Message: formatProviderErrors(body.Errors, resp.StatusCode)}
	}

	if len(body.Data) == 0 {
		return nil, &entity.ResolverError{Message: msgNoFlightFound}
	}

	data := body.Data[0]
	if len(data.FlightPoints) < 2 || data.FlightPoints[0].Departure == nil || data.FlightPoints[1].Arrival == nil ||
		len(data.FlightPoints[0].Departure.Timings) == 0 || len(data.FlightPoints[1].Arrival.Timings) == 0 ||
		len(data.Segments) == 0 {
		r.logger.Error("Provider returned incomplete flight points", "flightNumber", flightNumber)
		return nil, &entity.ResolverError{Message: msgNoFlightFound}
	}

	departureTime, err := utils.ParseFlightTiming(data.FlightPoints[0].Departure.Timings[0].Value)
	if err != nil {
		return nil, &entity.ResolverError{Message: fmt.Sprintf("bad departure timing from provider: %v", err)}
	}
	arrivalTime, err := utils.ParseFlightTiming(data.FlightPoints[1].Arrival.Timings[0].Value)
	if err != nil {
		return nil, &entity.ResolverError{Message: fmt.Sprintf("bad arrival timing from provider: %v", err)}
	}

	details := &entity.FlightDetails{
		DepartureAirport: data.FlightPoints[0].IataCode,
		DepartureTime:    departureTime,
		ArrivalAirport:   data.FlightPoints[1].IataCode,
		ArrivalTime:      arrivalTime,
		FlightDuration:   data.Segments[0].ScheduledSegmentDuration,
	}

	r.logger.Info("Resolved flight details",
		"from", details.DepartureAirport,
		"to", details.ArrivalAirport,
		"departure", details.DepartureTime.Format(time.RFC3339))

	return details, nil
}

// formatProviderErrors translates the provider's structured error list into a
// user-facing message. A "past date" detail gets a fixed wording.
func formatProviderErrors(errs []amadeusError, statusCode int) string {
	if len(errs) == 0 {
		return fmt.Sprintf("flight data provider returned status %d", statusCode)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if strings.Contains(e.Detail, "past date") {
			messages = append(messages, msgPastDate)
			continue
		}
		messages = append(messages, fmt.Sprintf("%s (%d): %s", e.Title, e.Code, e.Detail))
	}
	return strings.Join(messages, "; ")
}
