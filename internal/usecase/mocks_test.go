package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/pkg/metrics"
)

// Shared metrics instance; promauto registers collectors globally, so tests
// must not create more than one.
var (
	testMetricsOnce sync.Once
	testMetrics     *metrics.Metrics
)

func newTestMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics("checkin_service_test")
	})
	return testMetrics
}

var errNotFound = errors.New("record not found")

// MockFlightRepository implements repository.FlightRepository backed by a map
type MockFlightRepository struct {
	mu      sync.Mutex
	flights map[string]*entity.Flight

	CreateCalls int
	DeleteCalls int

	CreateFunc func(ctx context.Context, flight *entity.Flight) error
}

func NewMockFlightRepository() *MockFlightRepository {
	return &MockFlightRepository{flights: make(map[string]*entity.Flight)}
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, flight)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	copied := *flight
	m.flights[flight.ID] = &copied
	return nil
}

func (m *MockFlightRepository) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	flight, ok := m.flights[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *flight
	return &copied, nil
}

func (m *MockFlightRepository) FindByJobID(ctx context.Context, jobID string) (*entity.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, flight := range m.flights {
		if flight.CheckinJobID != nil && *flight.CheckinJobID == jobID {
			copied := *flight
			return &copied, nil
		}
	}
	return nil, errNotFound
}

func (m *MockFlightRepository) ListActive(ctx context.Context) ([]*entity.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var active []*entity.Flight
	for _, flight := range m.flights {
		if flight.DeletedAt == nil {
			copied := *flight
			active = append(active, &copied)
		}
	}
	return active, nil
}

func (m *MockFlightRepository) SetSchedule(ctx context.Context, id string, jobID string, status entity.CheckinStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	flight, ok := m.flights[id]
	if !ok {
		return errNotFound
	}
	flight.CheckinJobID = &jobID
	flight.CheckinStatus = &status
	return nil
}

func (m *MockFlightRepository) SetCheckinOutcome(ctx context.Context, id string, status entity.CheckinStatus, boardingPosition string, checkinError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	flight, ok := m.flights[id]
	if !ok {
		return errNotFound
	}
	flight.CheckinStatus = &status
	flight.BoardingPosition = boardingPosition
	flight.CheckinError = checkinError
	return nil
}

func (m *MockFlightRepository) SoftDelete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	flight, ok := m.flights[id]
	if !ok {
		return errNotFound
	}
	now := time.Now()
	flight.DeletedAt = &now
	return nil
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	delete(m.flights, id)
	return nil
}

func (m *MockFlightRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var purged int64
	for id, flight := range m.flights {
		if flight.DeletedAt != nil && flight.DeletedAt.Before(cutoff) {
			delete(m.flights, id)
			purged++
		}
	}
	return purged, nil
}

func (m *MockFlightRepository) Stored(id string) *entity.Flight {
	m.mu.Lock()
	defer m.mu.Unlock()
	flight, ok := m.flights[id]
	if !ok {
		return nil
	}
	copied := *flight
	return &copied
}

func (m *MockFlightRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.flights)
}

// MockFlightDetailRepository implements repository.FlightDetailRepository
type MockFlightDetailRepository struct {
	LookupFunc func(ctx context.Context, flightNumber int, departureDate time.Time) (*entity.FlightDetails, error)
}

func (m *MockFlightDetailRepository) Lookup(ctx context.Context, flightNumber int, departureDate time.Time) (*entity.FlightDetails, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, flightNumber, departureDate)
	}
	return nil, &entity.ResolverError{Message: "no lookup configured"}
}

// MockSchedulerRepository implements repository.SchedulerRepository
type MockSchedulerRepository struct {
	ScheduleCalls []*entity.ScheduleJob
	CancelCalls   []string

	ScheduleFunc func(ctx context.Context, job *entity.ScheduleJob) (string, error)
	CancelFunc   func(ctx context.Context, jobID string) error
}

func (m *MockSchedulerRepository) Schedule(ctx context.Context, job *entity.ScheduleJob) (string, error) {
	m.ScheduleCalls = append(m.ScheduleCalls, job)
	if m.ScheduleFunc != nil {
		return m.ScheduleFunc(ctx, job)
	}
	return "job-1", nil
}

func (m *MockSchedulerRepository) Cancel(ctx context.Context, jobID string) error {
	m.CancelCalls = append(m.CancelCalls, jobID)
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, jobID)
	}
	return nil
}

// MockJournalRepository implements repository.JournalRepository
type MockJournalRepository struct {
	Entries map[string]*entity.JournalEntry
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{Entries: make(map[string]*entity.JournalEntry)}
}

func (m *MockJournalRepository) Save(ctx context.Context, entry *entity.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = "entry-1"
	}
	if entry.Status == "" {
		entry.Status = entity.JournalStatusPending
	}
	copied := *entry
	m.Entries[entry.ID] = &copied
	return nil
}

func (m *MockJournalRepository) MarkFormatted(ctx context.Context, id string, formattedText string) error {
	entry, ok := m.Entries[id]
	if !ok {
		return errNotFound
	}
	entry.FormattedText = formattedText
	entry.Status = entity.JournalStatusFormatted
	return nil
}

func (m *MockJournalRepository) MarkForwarded(ctx context.Context, id string) error {
	entry, ok := m.Entries[id]
	if !ok {
		return errNotFound
	}
	entry.Status = entity.JournalStatusForwarded
	return nil
}

func (m *MockJournalRepository) MarkFailed(ctx context.Context, id string, errorDetail string) error {
	entry, ok := m.Entries[id]
	if !ok {
		return errNotFound
	}
	entry.Status = entity.JournalStatusFailed
	entry.ErrorDetail = errorDetail
	return nil
}

func (m *MockJournalRepository) FindRecent(ctx context.Context, limit int) ([]*entity.JournalEntry, error) {
	var entries []*entity.JournalEntry
	for _, entry := range m.Entries {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries, nil
}

// MockFormatter implements repository.FormatterRepository
type MockFormatter struct {
	FormatFunc func(ctx context.Context, message string) (string, error)
}

func (m *MockFormatter) FormatEntry(ctx context.Context, message string) (string, error) {
	if m.FormatFunc != nil {
		return m.FormatFunc(ctx, message)
	}
	return "# Title\n\n" + message, nil
}

// MockTranscriber implements repository.TranscriberRepository
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, filename string, audio io.Reader) (string, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, filename, audio)
	}
	return "transcript", nil
}

// MockNotePublisher implements repository.NotePublisherRepository
type MockNotePublisher struct {
	PublishCalls int
	PublishFunc  func(ctx context.Context, note string) error
}

func (m *MockNotePublisher) Publish(ctx context.Context, note string) error {
	m.PublishCalls++
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, note)
	}
	return nil
}
