package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
)

// VisitorRepository is the visitor data-access interface.
type VisitorRepository interface {
	Create(ctx context.Context, visitor *model.Visitor) error
	GetByID(ctx context.Context, id string) (*model.Visitor, error)
	GetByName(ctx context.Context, name, paternal, maternal string) (*model.Visitor, error)
	GetByDocument(ctx context.Context, documentNumber string) (*model.Visitor, error)
	Update(ctx context.Context, visitor *model.Visitor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Visitor, error)
}

type visitorRepo struct {
	db *gorm.DB
}

// NewVisitorRepo builds the GORM-backed VisitorRepository.
func NewVisitorRepo(db *gorm.DB) VisitorRepository {
	return &visitorRepo{db: db}
}

func (r *visitorRepo) Create(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *visitorRepo) GetByID(ctx context.Context, id string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) GetByName(ctx context.Context, name, paternal, maternal string) (*model.Visitor, error) {
	q := r.db.WithContext(ctx).
		Where("name = ?", name).
		Where("paternal_surname = ?", paternal)
	if maternal != "" {
		q = q.Where("maternal_surname = ?", maternal)
	}

	var visitor model.Visitor
	if err := q.First(&visitor).Error; err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) GetByDocument(ctx context.Context, documentNumber string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.WithContext(ctx).
		Where("document_number = ?", documentNumber).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) Update(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Save(visitor).Error
}

func (r *visitorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Visitor{}).Error
}

func (r *visitorRepo) List(ctx context.Context) ([]model.Visitor, error) {
	var visitors []model.Visitor
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&visitors).Error
	return visitors, err
}
