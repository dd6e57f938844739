package repository

import (
	"context"
	"time"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	db.AutoMigrate(&Flights{})

	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID                 string `gorm:"column:id;primaryKey"`
	ConfirmationNumber string `gorm:"column:confirmation_number"`
	FirstName          string `gorm:"column:first_name"`
	LastName           string `gorm:"column:last_name"`
	FlightNumber       int    `gorm:"column:flight_number"`
	FlightDate         string `gorm:"column:flight_date"`
	Email              string `gorm:"column:email"`
	PhoneNumber        string `gorm:"column:phone_number"`

	DepartureAirport string     `gorm:"column:departure_airport"`
	DepartureTime    *time.Time `gorm:"column:departure_time"`
	ArrivalAirport   string     `gorm:"column:arrival_airport"`
	ArrivalTime      *time.Time `gorm:"column:arrival_time"`
	FlightDuration   string     `gorm:"column:flight_duration"`

	CheckinStatus    *int    `gorm:"column:checkin_status"`
	CheckinError     string  `gorm:"column:checkin_error"`
	CheckinJobID     *string `gorm:"column:checkin_job_id;index"`
	BoardingPosition string  `gorm:"column:boarding_position"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

// Create inserts a new flight into the database
func (r *GormFlightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	model := toModel(flight)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	flight.CreatedAt = model.CreatedAt
	flight.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID finds a flight by id, including soft-deleted records
func (r *GormFlightRepository) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	var model Flights
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return toEntity(&model), nil
}

// FindByJobID finds a flight by its scheduler job id, including soft-deleted
// records
func (r *GormFlightRepository) FindByJobID(ctx context.Context, jobID string) (*entity.Flight, error) {
	var model Flights
	result := r.db.WithContext(ctx).Unscoped().Where("checkin_job_id = ?", jobID).First(&model)

	if result.Error != nil {
		return nil, result.Error
	}

	return toEntity(&model), nil
}

// ListActive returns non-deleted flights sorted by departure time descending
func (r *GormFlightRepository) ListActive(ctx context.Context) ([]*entity.Flight, error) {
	var models []Flights
	result := r.db.WithContext(ctx).Order("departure_time DESC").Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	flights := make([]*entity.Flight, 0, len(models))
	for i := range models {
		flights = append(flights, toEntity(&models[i]))
	}

	return flights, nil
}

// SetSchedule records the scheduler job id and status in a single update
func (r *GormFlightRepository) SetSchedule(ctx context.Context, id string, jobID string, status entity.CheckinStatus) error {
	statusValue := int(status)
	result := r.db.WithContext(ctx).Model(&Flights{}).Where("id = ?", id).Updates(map[string]interface{}{
		"checkin_job_id": jobID,
		"checkin_status": statusValue,
		"updated_at":     time.Now(),
	})
	return result.Error
}

// SetCheckinOutcome applies a check-in callback result in a single update.
// Overwrites on repeat delivery, so replayed callbacks converge on the same
// state.
func (r *GormFlightRepository) SetCheckinOutcome(ctx context.Context, id string, status entity.CheckinStatus, boardingPosition string, checkinError string) error {
	statusValue := int(status)
	result := r.db.WithContext(ctx).Unscoped().Model(&Flights{}).Where("id = ?", id).Updates(map[string]interface{}{
		"checkin_status":    statusValue,
		"boarding_position": boardingPosition,
		"checkin_error":     checkinError,
		"updated_at":        time.Now(),
	})
	return result.Error
}

// SoftDelete marks a flight as cancelled
func (r *GormFlightRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Flights{})
	return result.Error
}

// Delete removes a flight row permanently
func (r *GormFlightRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&Flights{})
	return result.Error
}

// PurgeDeletedBefore permanently removes soft-deleted flights older than
// cutoff and returns how many rows went away
func (r *GormFlightRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL").
		Where("deleted_at < ?", cutoff).
		Delete(&Flights{})
	return result.RowsAffected, result.Error
}

func toModel(flight *entity.Flight) *Flights {
	var status *int
	if flight.CheckinStatus != nil {
		value := int(*flight.CheckinStatus)
		status = &value
	}

	return &Flights{
		ID:                 flight.ID,
		ConfirmationNumber: flight.ConfirmationNumber,
		FirstName:          flight.FirstName,
		LastName:           flight.LastName,
		FlightNumber:       flight.FlightNumber,
		FlightDate:         flight.FlightDate,
		Email:              flight.Email,
		PhoneNumber:        flight.PhoneNumber,
		DepartureAirport:   flight.DepartureAirport,
		DepartureTime:      flight.DepartureTime,
		ArrivalAirport:     flight.ArrivalAirport,
		ArrivalTime:        flight.ArrivalTime,
		FlightDuration:     flight.FlightDuration,
		CheckinStatus:      status,
		CheckinError:       flight.CheckinError,
		CheckinJobID:       flight.CheckinJobID,
		BoardingPosition:   flight.BoardingPosition,
	}
}

func toEntity(model *Flights) *entity.Flight {
	var status *entity.CheckinStatus
	if model.CheckinStatus != nil {
		value := entity.CheckinStatus(*model.CheckinStatus)
		status = &value
	}

	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		value := model.DeletedAt.Time
		deletedAt = &value
	}

	return &entity.Flight{
		ID:                 model.ID,
		ConfirmationNumber: model.ConfirmationNumber,
		FirstName:          model.FirstName,
		LastName:           model.LastName,
		FlightNumber:       model.FlightNumber,
		FlightDate:         model.FlightDate,
		Email:              model.Email,
		PhoneNumber:        model.PhoneNumber,
		DepartureAirport:   model.DepartureAirport,
		DepartureTime:      model.DepartureTime,
		ArrivalAirport:     model.ArrivalAirport,
		ArrivalTime:        model.ArrivalTime,
		FlightDuration:     model.FlightDuration,
		CheckinStatus:      status,
		CheckinError:       model.CheckinError,
		CheckinJobID:       model.CheckinJobID,
		BoardingPosition:   model.BoardingPosition,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
		DeletedAt:          deletedAt,
	}
}
