package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrEmptyPlate      = errors.New("plate must not be empty")
)

// VehicleService is the vehicle registry interface.
type VehicleService interface {
	Create(ctx context.Context, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.VehicleResponse, error)
	List(ctx context.Context) ([]dto.VehicleResponse, error)
	Delete(ctx context.Context, id string) error
}

type vehicleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVehicleService builds the VehicleService.
func NewVehicleService(repo *repository.Repository, logger *zap.Logger) VehicleService {
	return &vehicleService{repo: repo, logger: logger}
}

// Create registers a vehicle. Registering an already-known plate returns
// the existing record unchanged.
func (s *vehicleService) Create(ctx context.Context, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	plate := strings.TrimSpace(req.Plate)
	if plate == "" {
		return nil, ErrEmptyPlate
	}

	existing, err := s.repo.Vehicle.GetByPlate(ctx, plate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("looking up vehicle by plate failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return toVehicleResponse(existing), nil
	}

	vehicle := &model.Vehicle{
		Plate: plate,
		Make:  req.Make,
		Model: req.Model,
		Color: req.Color,
	}
	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		s.logger.Error("creating vehicle failed", zap.Error(err))
		return nil, err
	}

	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) GetByID(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	vehicle, err := s.repo.Vehicle.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("loading vehicle failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) List(ctx context.Context) ([]dto.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.List(ctx)
	if err != nil {
		s.logger.Error("listing vehicles failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		result = append(result, *toVehicleResponse(&vehicles[i]))
	}
	return result, nil
}

func (s *vehicleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Vehicle.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		s.logger.Error("loading vehicle failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Vehicle.Delete(ctx, id); err != nil {
		s.logger.Error("deleting vehicle failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toVehicleResponse(v *model.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:    v.VehicleID,
		Plate: v.Plate,
		Make:  v.Make,
		Model: v.Model,
		Color: v.Color,
	}
}
