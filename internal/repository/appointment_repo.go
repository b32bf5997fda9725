package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
)

// AppointmentRepository is the appointment data-access interface.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, date, area, visited, creatorID string) ([]model.Appointment, error)
	ListByCreator(ctx context.Context, creatorID string) ([]model.Appointment, error)
	ListByVisitor(ctx context.Context, visitorID string) ([]model.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]model.Appointment, error)
	// ListByDateLocked takes row locks on the date's appointments so two
	// concurrent bookings cannot both pass the conflict check.
	ListByDateLocked(ctx context.Context, date string) ([]model.Appointment, error)

	CountByVisitorExcluding(ctx context.Context, visitorID, excludeID string) (int64, error)
	CountByVehicleExcluding(ctx context.Context, vehicleID, excludeID string) (int64, error)

	// CompleteElapsed flips active appointments whose date+time is strictly
	// in the past to completed, returning the number of rows changed.
	CompleteElapsed(ctx context.Context) (int64, error)
}

type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo builds the GORM-backed AppointmentRepository.
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Vehicle").
		Where("id = ?", id).
		First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Appointment{}).Error
}

func (r *appointmentRepo) List(ctx context.Context, date, area, visited, creatorID string) ([]model.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Vehicle")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if area != "" {
		q = q.Where("area = ?", area)
	}
	if visited != "" {
		q = q.Where("visited_person_name = ?", visited)
	}
	if creatorID != "" {
		q = q.Where("created_by = ?", creatorID)
	}

	var appts []model.Appointment
	err := q.Order("date ASC, time ASC").Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByCreator(ctx context.Context, creatorID string) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Vehicle").
		Where("created_by = ?", creatorID).
		Order("date ASC, time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByVisitor(ctx context.Context, visitorID string) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Vehicle").
		Where("visitor_id = ?", visitorID).
		Order("date ASC, time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByDate(ctx context.Context, date string) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Visitor").
		Preload("Vehicle").
		Where("date = ?", date).
		Order("time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByDateLocked(ctx context.Context, date string) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "appointments"}}).
		Preload("Visitor").
		Where("date = ?", date).
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) CountByVisitorExcluding(ctx context.Context, visitorID, excludeID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("visitor_id = ? AND id <> ?", visitorID, excludeID).
		Count(&n).Error
	return n, err
}

func (r *appointmentRepo) CountByVehicleExcluding(ctx context.Context, vehicleID, excludeID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("vehicle_id = ? AND id <> ?", vehicleID, excludeID).
		Count(&n).Error
	return n, err
}

func (r *appointmentRepo) CompleteElapsed(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("status = ?", model.AppointmentActive).
		// date+time is a naive timestamp in the wall clock appointments are
		// booked in; LOCALTIMESTAMP keeps the comparison in the session
		// timezone (db.timezone) instead of casting through timestamptz.
		Where("(date + time) < LOCALTIMESTAMP").
		Update("status", model.AppointmentCompleted)
	return res.RowsAffected, res.Error
}
