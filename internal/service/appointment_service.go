package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/config"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/notify"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

// ── appointment module business errors ──

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrVisitorNotFound     = errors.New("visitor not found, register the visitor before booking")
	ErrDuplicateBooking    = errors.New("the visitor already has an appointment on that date")
	ErrTimeConflict        = errors.New("the requested time falls inside another appointment's window")
	ErrVisitorUnderage     = errors.New("the visitor does not meet the minimum age")
	ErrForbidden           = errors.New("the role does not allow modifying this appointment")
	ErrInvalidDate         = errors.New("date must be today or later, in YYYY-MM-DD format")
	ErrInvalidTime         = errors.New("time must be a wall-clock value in HH:MM format")
)

// AppointmentService is the booking engine interface.
type AppointmentService interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest, callerID string) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	List(ctx context.Context, req *dto.AppointmentListRequest, callerID string, role model.Role) ([]dto.AppointmentResponse, error)
	ListByVisitorName(ctx context.Context, name, paternal, maternal string) ([]dto.AppointmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAppointmentRequest, callerID string, role model.Role) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id string, callerID string, role model.Role) error
}

type appointmentService struct {
	cfg      *config.BookingConfig
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewAppointmentService builds the booking engine.
func NewAppointmentService(cfg *config.BookingConfig, repo *repository.Repository, notifier Notifier, logger *zap.Logger) AppointmentService {
	return &appointmentService{cfg: cfg, repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create books an appointment. The visitor must exist, the date's other
// appointments must all sit at least the configured window away, and the
// visitor must meet the minimum age. Existence, conflict and duplicate
// checks run inside one transaction holding row locks on the date's
// appointments, so concurrent bookings serialize instead of double-booking.
func (s *appointmentService) Create(ctx context.Context, req *dto.CreateAppointmentRequest, callerID string) (*dto.AppointmentResponse, error) {
	if err := validateBookingDate(req.Date); err != nil {
		return nil, err
	}
	reqMinutes, err := model.MinutesOfDay(req.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}

	var created *model.Appointment
	var visitor *model.Visitor

	err = s.repo.Atomic.RunInTx(ctx, func(r *repository.Repository) error {
		v, err := r.Visitor.GetByName(ctx, req.VisitorName, req.VisitorPaternalSurname, req.VisitorMaternalSurname)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVisitorNotFound
			}
			return err
		}
		visitor = v

		sameDay, err := r.Appointment.ListByDateLocked(ctx, req.Date)
		if err != nil {
			return err
		}

		// One visit per visitor per day, matched by contact email.
		for i := range sameDay {
			if sameDay[i].Visitor != nil && sameDay[i].Visitor.Email == v.Email {
				return ErrDuplicateBooking
			}
		}

		if age := v.AgeAt(time.Now()); age >= 0 && age < s.cfg.MinVisitorAge {
			return ErrVisitorUnderage
		}

		// Exclusion window: strictly closer than the window is a conflict,
		// exactly the window apart is allowed.
		for i := range sameDay {
			other, err := model.MinutesOfDay(sameDay[i].Time)
			if err != nil {
				// A row we cannot place on the clock must abort the booking,
				// not wave it through the exclusion window.
				return fmt.Errorf("appointment %s: %w", sameDay[i].AppointmentID, err)
			}
			if abs(reqMinutes-other) < s.cfg.ConflictWindowMinutes {
				return ErrTimeConflict
			}
		}

		vehicleID, err := s.resolveVehicle(ctx, r, req.Plate)
		if err != nil {
			return err
		}

		appt := &model.Appointment{
			VisitorID: v.VisitorID,
			VehicleID: vehicleID,
			CreatedBy: callerID,
			Date:      req.Date,
			Time:      req.Time,
			Area:      req.Area,
			Status:    model.AppointmentActive,
		}
		if name := trimmedOrNil(req.VisitedPersonName); name != nil {
			appt.VisitedPersonName = name
		}

		if err := r.Appointment.Create(ctx, appt); err != nil {
			return err
		}
		created = appt
		return nil
	})
	if err != nil {
		if !isBookingError(err) {
			s.logger.Error("creating appointment failed", zap.Error(err))
		}
		return nil, err
	}

	s.notifier.Enqueue(notify.Event{
		Kind:        notify.KindConfirmation,
		To:          visitor.Email,
		VisitorName: visitor.FullName(),
		VisitedName: visitedDisplay(created.VisitedPersonName, created.Area),
		Area:        created.Area,
		Date:        created.Date,
		Time:        created.Time,
		Plate:       req.Plate,
	})

	created.Visitor = visitor
	return s.toAppointmentResponse(created), nil
}

// resolveVehicle finds a vehicle by plate, registering a bare row for an
// unknown plate. A blank plate means no vehicle.
func (s *appointmentService) resolveVehicle(ctx context.Context, r *repository.Repository, plate string) (*string, error) {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return nil, nil
	}

	vehicle, err := r.Vehicle.GetByPlate(ctx, plate)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		vehicle = &model.Vehicle{Plate: plate}
		if err := r.Vehicle.Create(ctx, vehicle); err != nil {
			return nil, err
		}
	}
	return &vehicle.VehicleID, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *appointmentService) GetByID(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("loading appointment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toAppointmentResponse(appt), nil
}

// ────────────────────── List ──────────────────────

// List returns appointments visible to the caller: school admins see only
// the appointments they created, every other role sees all.
func (s *appointmentService) List(ctx context.Context, req *dto.AppointmentListRequest, callerID string, role model.Role) ([]dto.AppointmentResponse, error) {
	creatorID := ""
	if role == model.RoleSchoolAdmin {
		creatorID = callerID
	}

	appts, err := s.repo.Appointment.List(ctx, req.Date, req.Area, req.Visited, creatorID)
	if err != nil {
		s.logger.Error("listing appointments failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		result = append(result, *s.toAppointmentResponse(&appts[i]))
	}
	return result, nil
}

func (s *appointmentService) ListByVisitorName(ctx context.Context, name, paternal, maternal string) ([]dto.AppointmentResponse, error) {
	visitor, err := s.repo.Visitor.GetByName(ctx, name, paternal, maternal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}

	appts, err := s.repo.Appointment.ListByVisitor(ctx, visitor.VisitorID)
	if err != nil {
		s.logger.Error("listing appointments by visitor failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		result = append(result, *s.toAppointmentResponse(&appts[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update reschedules an appointment. Only the supplied fields change; the
// exclusion-window rule is deliberately not re-checked here, staff moves
// are trusted.
func (s *appointmentService) Update(ctx context.Context, id string, req *dto.UpdateAppointmentRequest, callerID string, role model.Role) (*dto.AppointmentResponse, error) {
	appt, err := s.loadForMutation(ctx, id, callerID, role)
	if err != nil {
		return nil, err
	}

	oldDate, oldTime := appt.Date, appt.Time

	if req.Date != nil {
		if _, err := time.Parse(model.DateLayout, *req.Date); err != nil {
			return nil, ErrInvalidDate
		}
		appt.Date = *req.Date
	}
	if req.Time != nil {
		if _, err := model.MinutesOfDay(*req.Time); err != nil {
			return nil, ErrInvalidTime
		}
		appt.Time = *req.Time
	}

	if err := s.repo.Appointment.Update(ctx, appt); err != nil {
		s.logger.Error("updating appointment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if appt.Visitor != nil {
		s.notifier.Enqueue(notify.Event{
			Kind:        notify.KindRescheduled,
			To:          appt.Visitor.Email,
			VisitorName: appt.Visitor.FullName(),
			VisitedName: visitedDisplay(appt.VisitedPersonName, appt.Area),
			Area:        appt.Area,
			Date:        appt.Date,
			Time:        appt.Time,
			OldDate:     oldDate,
			OldTime:     oldTime,
		})
	}

	return s.toAppointmentResponse(appt), nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes an appointment, and with it any visitor or vehicle left
// without another referencing appointment. The cascade commits as one
// transaction.
func (s *appointmentService) Delete(ctx context.Context, id string, callerID string, role model.Role) error {
	appt, err := s.loadForMutation(ctx, id, callerID, role)
	if err != nil {
		return err
	}

	err = s.repo.Atomic.RunInTx(ctx, func(r *repository.Repository) error {
		if err := r.Appointment.Delete(ctx, id); err != nil {
			return err
		}

		n, err := r.Appointment.CountByVisitorExcluding(ctx, appt.VisitorID, id)
		if err != nil {
			return err
		}
		if n == 0 {
			if err := r.Visitor.Delete(ctx, appt.VisitorID); err != nil {
				return err
			}
		}

		if appt.VehicleID != nil {
			n, err := r.Appointment.CountByVehicleExcluding(ctx, *appt.VehicleID, id)
			if err != nil {
				return err
			}
			if n == 0 {
				if err := r.Vehicle.Delete(ctx, *appt.VehicleID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("deleting appointment failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if appt.Visitor != nil {
		s.notifier.Enqueue(notify.Event{
			Kind:        notify.KindCancelled,
			To:          appt.Visitor.Email,
			VisitorName: appt.Visitor.FullName(),
			VisitedName: visitedDisplay(appt.VisitedPersonName, appt.Area),
			Area:        appt.Area,
			Date:        appt.Date,
			Time:        appt.Time,
		})
	}

	return nil
}

// ── internal helpers ──

// loadForMutation loads an appointment and enforces the mutation policy:
// system admins may touch anything, school admins only what they created,
// everyone else nothing.
func (s *appointmentService) loadForMutation(ctx context.Context, id, callerID string, role model.Role) (*model.Appointment, error) {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("loading appointment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !role.Can(model.OpMutateAppointment) {
		return nil, ErrForbidden
	}
	if role == model.RoleSchoolAdmin && appt.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	return appt, nil
}

func (s *appointmentService) toAppointmentResponse(appt *model.Appointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:        appt.AppointmentID,
		CreatedBy: appt.CreatedBy,
		Date:      canonicalDateOr(appt.Date),
		Time:      canonicalClockOr(appt.Time),
		Area:      appt.Area,
		Status:    appt.Status,
		CreatedAt: appt.CreatedAt.Format(time.RFC3339),
	}
	if appt.VisitedPersonName != nil {
		resp.VisitedPersonName = *appt.VisitedPersonName
	}
	if appt.Visitor != nil {
		resp.Visitor = toVisitorResponse(appt.Visitor)
	}
	if appt.Vehicle != nil {
		resp.Vehicle = &dto.VehicleResponse{
			ID:    appt.Vehicle.VehicleID,
			Plate: appt.Vehicle.Plate,
			Make:  appt.Vehicle.Make,
			Model: appt.Vehicle.Model,
			Color: appt.Vehicle.Color,
		}
	}
	return resp
}

// canonicalDateOr normalizes a stored date, keeping the raw value when it
// fits no known layout.
func canonicalDateOr(s string) string {
	if d, err := model.CanonicalDate(s); err == nil {
		return d
	}
	return s
}

// canonicalClockOr normalizes a stored time-of-day the same way.
func canonicalClockOr(s string) string {
	if t, err := model.CanonicalClock(s); err == nil {
		return t
	}
	return s
}

// validateBookingDate checks the layout and rejects dates before today.
func validateBookingDate(date string) error {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return ErrInvalidDate
	}
	today, _ := time.Parse(model.DateLayout, time.Now().Format(model.DateLayout))
	if d.Before(today) {
		return ErrInvalidDate
	}
	return nil
}

// visitedDisplay names the visit target: the free-text person, or the area.
func visitedDisplay(visited *string, area string) string {
	if visited != nil && *visited != "" {
		return *visited
	}
	return "the " + area + " area"
}

func isBookingError(err error) bool {
	return errors.Is(err, ErrVisitorNotFound) ||
		errors.Is(err, ErrDuplicateBooking) ||
		errors.Is(err, ErrTimeConflict) ||
		errors.Is(err, ErrVisitorUnderage)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func trimmedOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
