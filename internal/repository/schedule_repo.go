package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
)

// CoordinatorScheduleRepository is the coordinator-calendar data-access interface.
type CoordinatorScheduleRepository interface {
	Create(ctx context.Context, block *model.CoordinatorSchedule) error
	GetByID(ctx context.Context, id string) (*model.CoordinatorSchedule, error)
	Update(ctx context.Context, block *model.CoordinatorSchedule) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, userID string) ([]model.CoordinatorSchedule, error)
	ListByOwnerAndDay(ctx context.Context, userID string, dayOfWeek int) ([]model.CoordinatorSchedule, error)
}

type coordinatorScheduleRepo struct {
	db *gorm.DB
}

// NewCoordinatorScheduleRepo builds the GORM-backed CoordinatorScheduleRepository.
func NewCoordinatorScheduleRepo(db *gorm.DB) CoordinatorScheduleRepository {
	return &coordinatorScheduleRepo{db: db}
}

func (r *coordinatorScheduleRepo) Create(ctx context.Context, block *model.CoordinatorSchedule) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *coordinatorScheduleRepo) GetByID(ctx context.Context, id string) (*model.CoordinatorSchedule, error) {
	var block model.CoordinatorSchedule
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *coordinatorScheduleRepo) Update(ctx context.Context, block *model.CoordinatorSchedule) error {
	return r.db.WithContext(ctx).Save(block).Error
}

func (r *coordinatorScheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CoordinatorSchedule{}).Error
}

func (r *coordinatorScheduleRepo) ListByOwner(ctx context.Context, userID string) ([]model.CoordinatorSchedule, error) {
	var blocks []model.CoordinatorSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *coordinatorScheduleRepo) ListByOwnerAndDay(ctx context.Context, userID string, dayOfWeek int) ([]model.CoordinatorSchedule, error) {
	var blocks []model.CoordinatorSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

// AreaScheduleRepository is the area-calendar data-access interface.
type AreaScheduleRepository interface {
	Create(ctx context.Context, block *model.AreaSchedule) error
	GetByID(ctx context.Context, id string) (*model.AreaSchedule, error)
	Update(ctx context.Context, block *model.AreaSchedule) error
	Delete(ctx context.Context, id string) error
	ListByArea(ctx context.Context, area string) ([]model.AreaSchedule, error)
	ListByAreaAndDay(ctx context.Context, area string, dayOfWeek int) ([]model.AreaSchedule, error)
}

type areaScheduleRepo struct {
	db *gorm.DB
}

// NewAreaScheduleRepo builds the GORM-backed AreaScheduleRepository.
func NewAreaScheduleRepo(db *gorm.DB) AreaScheduleRepository {
	return &areaScheduleRepo{db: db}
}

func (r *areaScheduleRepo) Create(ctx context.Context, block *model.AreaSchedule) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *areaScheduleRepo) GetByID(ctx context.Context, id string) (*model.AreaSchedule, error) {
	var block model.AreaSchedule
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *areaScheduleRepo) Update(ctx context.Context, block *model.AreaSchedule) error {
	return r.db.WithContext(ctx).Save(block).Error
}

func (r *areaScheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AreaSchedule{}).Error
}

func (r *areaScheduleRepo) ListByArea(ctx context.Context, area string) ([]model.AreaSchedule, error) {
	var blocks []model.AreaSchedule
	err := r.db.WithContext(ctx).
		Where("area = ?", area).
		Order("day_of_week ASC, start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *areaScheduleRepo) ListByAreaAndDay(ctx context.Context, area string, dayOfWeek int) ([]model.AreaSchedule, error) {
	var blocks []model.AreaSchedule
	err := r.db.WithContext(ctx).
		Where("area = ? AND day_of_week = ?", area, dayOfWeek).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}
