package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

// ── schedule module business errors ──

var (
	ErrScheduleNotFound    = errors.New("schedule block not found")
	ErrNotCoordinator      = errors.New("schedules can only belong to coordinators")
	ErrScheduleOverlap     = errors.New("the block overlaps an existing one")
	ErrInvalidBlockRange   = errors.New("end time must be after start time")
	ErrAvailabilityTarget  = errors.New("either user_id or area is required")
	ErrInvalidScheduleTime = errors.New("times must use HH:MM format")
)

// ScheduleService manages weekly calendars and availability queries.
type ScheduleService interface {
	CreateCoordinatorBlock(ctx context.Context, req *dto.CreateCoordinatorScheduleRequest) (*dto.ScheduleResponse, error)
	CreateAreaBlock(ctx context.Context, req *dto.CreateAreaScheduleRequest) (*dto.ScheduleResponse, error)
	UpdateCoordinatorBlock(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	UpdateAreaBlock(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteCoordinatorBlock(ctx context.Context, id string) error
	DeleteAreaBlock(ctx context.Context, id string) error
	ListCoordinatorBlocks(ctx context.Context, userID string) ([]dto.ScheduleResponse, error)
	ListAreaBlocks(ctx context.Context, area string) ([]dto.ScheduleResponse, error)
	Availability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService builds the ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── coordinator blocks ──────────────────────

func (s *scheduleService) CreateCoordinatorBlock(ctx context.Context, req *dto.CreateCoordinatorScheduleRequest) (*dto.ScheduleResponse, error) {
	owner, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading schedule owner failed", zap.Error(err))
		return nil, err
	}
	if owner.Role != model.RoleSchoolAdmin {
		return nil, ErrNotCoordinator
	}

	start, end, err := parseBlockRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.CoordinatorSchedule.ListByOwnerAndDay(ctx, req.UserID, req.DayOfWeek)
	if err != nil {
		s.logger.Error("listing schedule blocks failed", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if blocksOverlap(start, end, existing[i].StartTime, existing[i].EndTime) {
			return nil, ErrScheduleOverlap
		}
	}

	block := &model.CoordinatorSchedule{
		UserID:      req.UserID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Kind:        kindOrFree(req.Kind),
		Description: req.Description,
	}
	if err := s.repo.CoordinatorSchedule.Create(ctx, block); err != nil {
		s.logger.Error("creating schedule block failed", zap.Error(err))
		return nil, err
	}

	return coordinatorBlockResponse(block), nil
}

func (s *scheduleService) UpdateCoordinatorBlock(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	block, err := s.repo.CoordinatorSchedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("loading schedule block failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	applyScheduleUpdate(req, &block.DayOfWeek, &block.StartTime, &block.EndTime, &block.Kind, &block.Description)

	start, end, err := parseBlockRange(block.StartTime, block.EndTime)
	if err != nil {
		return nil, err
	}

	siblings, err := s.repo.CoordinatorSchedule.ListByOwnerAndDay(ctx, block.UserID, block.DayOfWeek)
	if err != nil {
		s.logger.Error("listing schedule blocks failed", zap.Error(err))
		return nil, err
	}
	for i := range siblings {
		if siblings[i].ScheduleID == block.ScheduleID {
			continue
		}
		if blocksOverlap(start, end, siblings[i].StartTime, siblings[i].EndTime) {
			return nil, ErrScheduleOverlap
		}
	}

	if err := s.repo.CoordinatorSchedule.Update(ctx, block); err != nil {
		s.logger.Error("updating schedule block failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return coordinatorBlockResponse(block), nil
}

func (s *scheduleService) DeleteCoordinatorBlock(ctx context.Context, id string) error {
	if _, err := s.repo.CoordinatorSchedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return s.repo.CoordinatorSchedule.Delete(ctx, id)
}

func (s *scheduleService) ListCoordinatorBlocks(ctx context.Context, userID string) ([]dto.ScheduleResponse, error) {
	blocks, err := s.repo.CoordinatorSchedule.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("listing schedule blocks failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *coordinatorBlockResponse(&blocks[i]))
	}
	return result, nil
}

// ────────────────────── area blocks ──────────────────────

func (s *scheduleService) CreateAreaBlock(ctx context.Context, req *dto.CreateAreaScheduleRequest) (*dto.ScheduleResponse, error) {
	start, end, err := parseBlockRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.AreaSchedule.ListByAreaAndDay(ctx, req.Area, req.DayOfWeek)
	if err != nil {
		s.logger.Error("listing area blocks failed", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if blocksOverlap(start, end, existing[i].StartTime, existing[i].EndTime) {
			return nil, ErrScheduleOverlap
		}
	}

	block := &model.AreaSchedule{
		Area:        req.Area,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Kind:        kindOrFree(req.Kind),
		Description: req.Description,
	}
	if err := s.repo.AreaSchedule.Create(ctx, block); err != nil {
		s.logger.Error("creating area block failed", zap.Error(err))
		return nil, err
	}

	return areaBlockResponse(block), nil
}

func (s *scheduleService) UpdateAreaBlock(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	block, err := s.repo.AreaSchedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("loading area block failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	applyScheduleUpdate(req, &block.DayOfWeek, &block.StartTime, &block.EndTime, &block.Kind, &block.Description)

	start, end, err := parseBlockRange(block.StartTime, block.EndTime)
	if err != nil {
		return nil, err
	}

	siblings, err := s.repo.AreaSchedule.ListByAreaAndDay(ctx, block.Area, block.DayOfWeek)
	if err != nil {
		s.logger.Error("listing area blocks failed", zap.Error(err))
		return nil, err
	}
	for i := range siblings {
		if siblings[i].ScheduleID == block.ScheduleID {
			continue
		}
		if blocksOverlap(start, end, siblings[i].StartTime, siblings[i].EndTime) {
			return nil, ErrScheduleOverlap
		}
	}

	if err := s.repo.AreaSchedule.Update(ctx, block); err != nil {
		s.logger.Error("updating area block failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return areaBlockResponse(block), nil
}

func (s *scheduleService) DeleteAreaBlock(ctx context.Context, id string) error {
	if _, err := s.repo.AreaSchedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return s.repo.AreaSchedule.Delete(ctx, id)
}

func (s *scheduleService) ListAreaBlocks(ctx context.Context, area string) ([]dto.ScheduleResponse, error) {
	blocks, err := s.repo.AreaSchedule.ListByArea(ctx, area)
	if err != nil {
		s.logger.Error("listing area blocks failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *areaBlockResponse(&blocks[i]))
	}
	return result, nil
}

// ────────────────────── availability ──────────────────────

// Availability reports whether a coordinator (by user_id) or an area is
// free at the given weekday and time. A point with no covering block is
// unavailable; a covered point is available only when the block is free.
func (s *scheduleService) Availability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	at, err := model.MinutesOfDay(req.Time)
	if err != nil {
		return nil, ErrInvalidScheduleTime
	}

	var covering *struct {
		kind string
		desc *string
	}

	switch {
	case req.UserID != "":
		blocks, err := s.repo.CoordinatorSchedule.ListByOwnerAndDay(ctx, req.UserID, req.DayOfWeek)
		if err != nil {
			s.logger.Error("listing schedule blocks failed", zap.Error(err))
			return nil, err
		}
		for i := range blocks {
			if blockCovers(at, blocks[i].StartTime, blocks[i].EndTime) {
				covering = &struct {
					kind string
					desc *string
				}{blocks[i].Kind, blocks[i].Description}
				break
			}
		}
	case req.Area != "":
		blocks, err := s.repo.AreaSchedule.ListByAreaAndDay(ctx, req.Area, req.DayOfWeek)
		if err != nil {
			s.logger.Error("listing area blocks failed", zap.Error(err))
			return nil, err
		}
		for i := range blocks {
			if blockCovers(at, blocks[i].StartTime, blocks[i].EndTime) {
				covering = &struct {
					kind string
					desc *string
				}{blocks[i].Kind, blocks[i].Description}
				break
			}
		}
	default:
		return nil, ErrAvailabilityTarget
	}

	resp := &dto.AvailabilityResponse{Available: false, Status: "unavailable"}
	if covering != nil {
		if covering.kind == model.ScheduleFree {
			resp.Available = true
			resp.Status = "available"
		}
		if covering.desc != nil {
			resp.Description = *covering.desc
		}
	}
	return resp, nil
}

// ── internal helpers ──

// parseBlockRange validates HH:MM endpoints and the start<end requirement.
func parseBlockRange(startTime, endTime string) (int, int, error) {
	start, err := model.MinutesOfDay(startTime)
	if err != nil {
		return 0, 0, ErrInvalidScheduleTime
	}
	end, err := model.MinutesOfDay(endTime)
	if err != nil {
		return 0, 0, ErrInvalidScheduleTime
	}
	if end <= start {
		return 0, 0, ErrInvalidBlockRange
	}
	return start, end, nil
}

// blocksOverlap treats blocks as half-open [start, end): touching
// endpoints do not conflict.
func blocksOverlap(start, end int, otherStart, otherEnd string) bool {
	os, err := model.MinutesOfDay(otherStart)
	if err != nil {
		return false
	}
	oe, err := model.MinutesOfDay(otherEnd)
	if err != nil {
		return false
	}
	return start < oe && os < end
}

// blockCovers reports whether the instant falls inside [start, end).
func blockCovers(at int, startTime, endTime string) bool {
	start, err := model.MinutesOfDay(startTime)
	if err != nil {
		return false
	}
	end, err := model.MinutesOfDay(endTime)
	if err != nil {
		return false
	}
	return at >= start && at < end
}

func kindOrFree(kind string) string {
	if kind == "" {
		return model.ScheduleFree
	}
	return kind
}

func applyScheduleUpdate(req *dto.UpdateScheduleRequest, day *int, start, end, kind *string, desc **string) {
	if req.DayOfWeek != nil {
		*day = *req.DayOfWeek
	}
	if req.StartTime != nil {
		*start = *req.StartTime
	}
	if req.EndTime != nil {
		*end = *req.EndTime
	}
	if req.Kind != nil {
		*kind = *req.Kind
	}
	if req.Description != nil {
		*desc = req.Description
	}
}

func coordinatorBlockResponse(b *model.CoordinatorSchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:        b.ScheduleID,
		UserID:    b.UserID,
		DayOfWeek: b.DayOfWeek,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Kind:      b.Kind,
	}
	if b.Description != nil {
		resp.Description = *b.Description
	}
	return resp
}

func areaBlockResponse(b *model.AreaSchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:        b.ScheduleID,
		Area:      b.Area,
		DayOfWeek: b.DayOfWeek,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Kind:      b.Kind,
	}
	if b.Description != nil {
		resp.Description = *b.Description
	}
	return resp
}
