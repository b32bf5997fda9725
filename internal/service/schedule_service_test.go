package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

func setupTestScheduleService() (ScheduleService, *repository.Repository) {
	repo := newTestRepo()
	return NewScheduleService(repo, zap.NewNop()), repo
}

func registerCoordinator(repo *repository.Repository, id string) {
	_ = repo.User.Create(context.Background(), &model.User{
		UserID:          id,
		Name:            "Coord",
		PaternalSurname: "Lopez",
		Email:           id + "@test.com",
		Role:            model.RoleSchoolAdmin,
	})
}

func coordinatorBlock(userID string, day int, start, end, kind string) *dto.CreateCoordinatorScheduleRequest {
	return &dto.CreateCoordinatorScheduleRequest{
		UserID:    userID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Kind:      kind,
	}
}

// ── coordinator blocks ──

func TestCreateCoordinatorBlock_Success(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")

	result, err := svc.CreateCoordinatorBlock(context.Background(), coordinatorBlock("coord-1", 0, "09:00", "12:00", "free"))
	if err != nil {
		t.Fatalf("CreateCoordinatorBlock should succeed: %v", err)
	}
	if result.Kind != model.ScheduleFree {
		t.Errorf("expected kind free, got %s", result.Kind)
	}
}

func TestCreateCoordinatorBlock_DefaultsToFree(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")

	result, err := svc.CreateCoordinatorBlock(context.Background(), coordinatorBlock("coord-1", 0, "09:00", "12:00", ""))
	if err != nil {
		t.Fatalf("CreateCoordinatorBlock should succeed: %v", err)
	}
	if result.Kind != model.ScheduleFree {
		t.Errorf("an omitted kind should default to free, got %s", result.Kind)
	}
}

func TestCreateCoordinatorBlock_RejectsNonCoordinator(t *testing.T) {
	svc, repo := setupTestScheduleService()
	_ = repo.User.Create(context.Background(), &model.User{
		UserID: "guard-1",
		Email:  "guard@test.com",
		Role:   model.RoleGuard,
	})

	_, err := svc.CreateCoordinatorBlock(context.Background(), coordinatorBlock("guard-1", 0, "09:00", "12:00", "free"))
	if !errors.Is(err, ErrNotCoordinator) {
		t.Errorf("expected ErrNotCoordinator, got: %v", err)
	}
}

func TestCreateCoordinatorBlock_OverlapRules(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")

	ctx := context.Background()
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "09:00", "12:00", "free")); err != nil {
		t.Fatalf("first block should succeed: %v", err)
	}

	// Partial overlap rejected.
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "11:00", "13:00", "busy")); !errors.Is(err, ErrScheduleOverlap) {
		t.Errorf("overlapping block should be rejected, got: %v", err)
	}

	// Touching blocks are fine: [09:00,12:00) then [12:00,14:00).
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "12:00", "14:00", "busy")); err != nil {
		t.Errorf("a block starting where another ends should be allowed: %v", err)
	}

	// Same times on another day are fine.
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 1, "09:00", "12:00", "free")); err != nil {
		t.Errorf("the same window on another day should be allowed: %v", err)
	}
}

func TestCreateCoordinatorBlock_InvalidRange(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")

	ctx := context.Background()
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "12:00", "09:00", "free")); !errors.Is(err, ErrInvalidBlockRange) {
		t.Errorf("end before start should be rejected, got: %v", err)
	}
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "09:00", "09:00", "free")); !errors.Is(err, ErrInvalidBlockRange) {
		t.Errorf("zero-length block should be rejected, got: %v", err)
	}
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "9am", "12:00", "free")); !errors.Is(err, ErrInvalidScheduleTime) {
		t.Errorf("malformed time should be rejected, got: %v", err)
	}
}

func TestUpdateCoordinatorBlock_OverlapExcludesSelf(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")

	ctx := context.Background()
	created, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "09:00", "12:00", "free"))
	if err != nil {
		t.Fatal(err)
	}

	// Shrinking the block overlaps only itself, which must not count.
	newEnd := "11:00"
	if _, err := svc.UpdateCoordinatorBlock(ctx, created.ID, &dto.UpdateScheduleRequest{EndTime: &newEnd}); err != nil {
		t.Errorf("shrinking a block should not conflict with itself: %v", err)
	}
}

// ── area blocks ──

func TestCreateAreaBlock_OverlapPerArea(t *testing.T) {
	svc, _ := setupTestScheduleService()
	ctx := context.Background()

	mk := func(area, start, end string) *dto.CreateAreaScheduleRequest {
		return &dto.CreateAreaScheduleRequest{
			Area:      area,
			DayOfWeek: 2,
			StartTime: start,
			EndTime:   end,
			Kind:      "free",
		}
	}

	if _, err := svc.CreateAreaBlock(ctx, mk("library", "08:00", "16:00")); err != nil {
		t.Fatalf("first area block should succeed: %v", err)
	}
	if _, err := svc.CreateAreaBlock(ctx, mk("library", "10:00", "11:00")); !errors.Is(err, ErrScheduleOverlap) {
		t.Errorf("overlapping library block should be rejected, got: %v", err)
	}
	if _, err := svc.CreateAreaBlock(ctx, mk("lab", "10:00", "11:00")); err != nil {
		t.Errorf("the same window in another area should be allowed: %v", err)
	}
}

// ── availability ──

func TestCreateCoordinatorBlock_OverlapWithStoredSecondsRendering(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")
	ctx := context.Background()

	// A persisted block carries the TIME column rendering with seconds.
	if err := repo.CoordinatorSchedule.Create(ctx, &model.CoordinatorSchedule{
		UserID:    "coord-1",
		DayOfWeek: 0,
		StartTime: "09:00:00",
		EndTime:   "12:00:00",
		Kind:      model.ScheduleFree,
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "10:00", "11:00", "busy")); !errors.Is(err, ErrScheduleOverlap) {
		t.Errorf("10:00-11:00 must overlap the stored 09:00:00-12:00:00 block, got: %v", err)
	}

	// Touching the stored end is still allowed.
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "12:00", "14:00", "busy")); err != nil {
		t.Errorf("a block starting at the stored end should be allowed: %v", err)
	}
}

func TestAvailability_WithStoredSecondsRendering(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")
	ctx := context.Background()

	if err := repo.CoordinatorSchedule.Create(ctx, &model.CoordinatorSchedule{
		UserID:    "coord-1",
		DayOfWeek: 0,
		StartTime: "09:00:00",
		EndTime:   "12:00:00",
		Kind:      model.ScheduleFree,
	}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Availability(ctx, &dto.AvailabilityRequest{
		UserID:    "coord-1",
		DayOfWeek: 0,
		Time:      "10:00",
	})
	if err != nil {
		t.Fatalf("Availability should succeed: %v", err)
	}
	if !result.Available {
		t.Error("10:00 falls inside the stored 09:00:00-12:00:00 free block and must be available")
	}
}

func TestAvailability_Coordinator(t *testing.T) {
	svc, repo := setupTestScheduleService()
	registerCoordinator(repo, "coord-1")

	ctx := context.Background()
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "09:00", "12:00", "free")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateCoordinatorBlock(ctx, coordinatorBlock("coord-1", 0, "12:00", "14:00", "busy")); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name       string
		at         string
		wantStatus string
	}{
		{"inside free block", "10:00", "available"},
		{"start of free block", "09:00", "available"},
		{"end of free block belongs to busy", "12:00", "unavailable"},
		{"inside busy block", "13:00", "unavailable"},
		{"uncovered time", "17:00", "unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Availability(ctx, &dto.AvailabilityRequest{
				UserID:    "coord-1",
				DayOfWeek: 0,
				Time:      tc.at,
			})
			if err != nil {
				t.Fatalf("Availability should succeed: %v", err)
			}
			if result.Status != tc.wantStatus {
				t.Errorf("at %s expected %s, got %s", tc.at, tc.wantStatus, result.Status)
			}
		})
	}
}

func TestAvailability_Area(t *testing.T) {
	svc, _ := setupTestScheduleService()
	ctx := context.Background()

	if _, err := svc.CreateAreaBlock(ctx, &dto.CreateAreaScheduleRequest{
		Area: "library", DayOfWeek: 3, StartTime: "08:00", EndTime: "15:00", Kind: "free",
	}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Availability(ctx, &dto.AvailabilityRequest{Area: "library", DayOfWeek: 3, Time: "09:30"})
	if err != nil {
		t.Fatalf("Availability should succeed: %v", err)
	}
	if !result.Available {
		t.Error("the library should be available at 09:30")
	}

	result, err = svc.Availability(ctx, &dto.AvailabilityRequest{Area: "library", DayOfWeek: 4, Time: "09:30"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Available {
		t.Error("an uncovered day should be unavailable")
	}
}

func TestAvailability_RequiresTarget(t *testing.T) {
	svc, _ := setupTestScheduleService()

	_, err := svc.Availability(context.Background(), &dto.AvailabilityRequest{DayOfWeek: 0, Time: "10:00"})
	if !errors.Is(err, ErrAvailabilityTarget) {
		t.Errorf("expected ErrAvailabilityTarget, got: %v", err)
	}
}
