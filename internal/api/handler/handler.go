package handler

import "github.com/JesusCruzCelis/Sistema-Citas2/internal/service"

// Handler aggregates the per-module HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Visitor     *VisitorHandler
	Vehicle     *VehicleHandler
	Appointment *AppointmentHandler
	Schedule    *ScheduleHandler
	Export      *ExportHandler
}

// NewHandler builds the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Visitor:     NewVisitorHandler(svc.Visitor),
		Vehicle:     NewVehicleHandler(svc.Vehicle),
		Appointment: NewAppointmentHandler(svc.Appointment),
		Schedule:    NewScheduleHandler(svc.Schedule),
		Export:      NewExportHandler(svc.Export),
	}
}
