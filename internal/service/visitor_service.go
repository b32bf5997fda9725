package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

// ── visitor module business errors ──

var (
	ErrVisitorRecordNotFound = errors.New("visitor record not found")
	ErrDocumentMismatch      = errors.New("the document number is registered to a different person")
	ErrInvalidBirthDate      = errors.New("birth date must use YYYY-MM-DD format")
)

// VisitorService is the visitor registry interface.
type VisitorService interface {
	Create(ctx context.Context, req *dto.CreateVisitorRequest) (*dto.VisitorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.VisitorResponse, error)
	List(ctx context.Context) ([]dto.VisitorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateVisitorRequest) (*dto.VisitorResponse, error)
	Delete(ctx context.Context, id string) error
}

type visitorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVisitorService builds the VisitorService.
func NewVisitorService(repo *repository.Repository, logger *zap.Logger) VisitorService {
	return &visitorService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create registers a visitor. The document number is the identity anchor:
// a repeat registration with the same document and name returns the
// existing record, the same document under a different name is rejected.
func (s *visitorService) Create(ctx context.Context, req *dto.CreateVisitorRequest) (*dto.VisitorResponse, error) {
	existing, err := s.repo.Visitor.GetByDocument(ctx, req.DocumentNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("looking up visitor by document failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		if existing.Name == req.Name && existing.PaternalSurname == req.PaternalSurname {
			return toVisitorResponse(existing), nil
		}
		return nil, ErrDocumentMismatch
	}

	visitor := &model.Visitor{
		Name:            req.Name,
		Gender:          req.Gender,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		DocumentNumber:  req.DocumentNumber,
		Email:           req.Email,
		Phone:           req.Phone,
		EntryType:       req.EntryType,
	}
	if req.BirthDate != "" {
		b, err := time.Parse(model.DateLayout, req.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		visitor.BirthDate = &b
	}

	if err := s.repo.Visitor.Create(ctx, visitor); err != nil {
		s.logger.Error("creating visitor failed", zap.Error(err))
		return nil, err
	}

	return toVisitorResponse(visitor), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *visitorService) GetByID(ctx context.Context, id string) (*dto.VisitorResponse, error) {
	visitor, err := s.repo.Visitor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorRecordNotFound
		}
		s.logger.Error("loading visitor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toVisitorResponse(visitor), nil
}

// ────────────────────── List ──────────────────────

func (s *visitorService) List(ctx context.Context) ([]dto.VisitorResponse, error) {
	visitors, err := s.repo.Visitor.List(ctx)
	if err != nil {
		s.logger.Error("listing visitors failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.VisitorResponse, 0, len(visitors))
	for i := range visitors {
		result = append(result, *toVisitorResponse(&visitors[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *visitorService) Update(ctx context.Context, id string, req *dto.UpdateVisitorRequest) (*dto.VisitorResponse, error) {
	visitor, err := s.repo.Visitor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorRecordNotFound
		}
		s.logger.Error("loading visitor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		visitor.Name = *req.Name
	}
	if req.Gender != nil {
		visitor.Gender = *req.Gender
	}
	if req.PaternalSurname != nil {
		visitor.PaternalSurname = *req.PaternalSurname
	}
	if req.MaternalSurname != nil {
		visitor.MaternalSurname = *req.MaternalSurname
	}
	if req.BirthDate != nil {
		b, err := time.Parse(model.DateLayout, *req.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		visitor.BirthDate = &b
	}
	if req.DocumentNumber != nil {
		visitor.DocumentNumber = *req.DocumentNumber
	}
	if req.Email != nil {
		visitor.Email = *req.Email
	}
	if req.Phone != nil {
		visitor.Phone = *req.Phone
	}
	if req.EntryType != nil {
		visitor.EntryType = *req.EntryType
	}

	if err := s.repo.Visitor.Update(ctx, visitor); err != nil {
		s.logger.Error("updating visitor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toVisitorResponse(visitor), nil
}

// ────────────────────── Delete ──────────────────────

func (s *visitorService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Visitor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVisitorRecordNotFound
		}
		s.logger.Error("loading visitor failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Visitor.Delete(ctx, id); err != nil {
		s.logger.Error("deleting visitor failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── internal helpers ──

func toVisitorResponse(v *model.Visitor) *dto.VisitorResponse {
	resp := &dto.VisitorResponse{
		ID:              v.VisitorID,
		Name:            v.Name,
		Gender:          v.Gender,
		PaternalSurname: v.PaternalSurname,
		MaternalSurname: v.MaternalSurname,
		DocumentNumber:  v.DocumentNumber,
		Email:           v.Email,
		Phone:           v.Phone,
		EntryType:       v.EntryType,
	}
	if v.BirthDate != nil {
		resp.BirthDate = v.BirthDate.Format(model.DateLayout)
	}
	return resp
}
