package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

// Visit slot length used for calendar events.
const visitSlotDuration = 30 * time.Minute

// ExportService produces the gate list spreadsheet and coordinator calendars.
type ExportService interface {
	GateListXLSX(ctx context.Context, date string) ([]byte, string, error)
	CoordinatorICS(ctx context.Context, userID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService builds the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── gate list ──────────────────────

var gateListHeader = []string{"Time", "Visitor", "Document", "Visiting", "Area", "Plate", "Status"}

// GateListXLSX builds the spreadsheet the entrance guards print for a day.
func (s *exportService) GateListXLSX(ctx context.Context, date string) ([]byte, string, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, "", ErrInvalidDate
	}

	appts, err := s.repo.Appointment.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("listing appointments for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, title := range gateListHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", err
		}
	}

	for row, appt := range appts {
		values := []interface{}{
			canonicalClockOr(appt.Time),
			visitorName(&appt),
			visitorDocument(&appt),
			visitedDisplay(appt.VisitedPersonName, appt.Area),
			appt.Area,
			vehiclePlate(&appt),
			appt.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "G", 20); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing gate list failed", zap.Error(err))
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("gate-list-%s.xlsx", date), nil
}

// ────────────────────── coordinator calendar ──────────────────────

// CoordinatorICS exports a coordinator's appointments as an iCalendar
// feed with one 30-minute event per visit.
func (s *exportService) CoordinatorICS(ctx context.Context, userID string) ([]byte, string, error) {
	owner, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("loading calendar owner failed", zap.Error(err))
		return nil, "", err
	}

	appts, err := s.repo.Appointment.ListByCreator(ctx, userID)
	if err != nil {
		s.logger.Error("listing appointments for calendar failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sistema-citas//appointments//EN")

	now := time.Now()
	for i := range appts {
		appt := &appts[i]
		start, err := time.ParseInLocation(
			model.DateLayout+" "+model.TimeLayout,
			canonicalDateOr(appt.Date)+" "+canonicalClockOr(appt.Time),
			time.Local,
		)
		if err != nil {
			s.logger.Warn("skipping appointment with malformed date",
				zap.String("id", appt.AppointmentID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(appt.AppointmentID + "@sistema-citas")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(visitSlotDuration))
		event.SetSummary("Visit: " + visitorName(appt))
		event.SetLocation(appt.Area)
		event.SetDescription(fmt.Sprintf("Visiting %s. Status: %s.",
			visitedDisplay(appt.VisitedPersonName, appt.Area), appt.Status))
	}

	filename := fmt.Sprintf("schedule-%s.ics", owner.UserID)
	return []byte(cal.Serialize()), filename, nil
}

// ── internal helpers ──

func visitorName(a *model.Appointment) string {
	if a.Visitor == nil {
		return ""
	}
	return a.Visitor.FullName()
}

func visitorDocument(a *model.Appointment) string {
	if a.Visitor == nil {
		return ""
	}
	return a.Visitor.DocumentNumber
}

func vehiclePlate(a *model.Appointment) string {
	if a.Vehicle == nil {
		return ""
	}
	return a.Vehicle.Plate
}
