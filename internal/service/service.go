package service

import (
	"go.uber.org/zap"

	"github.com/JesusCruzCelis/Sistema-Citas2/config"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/notify"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/jwt"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/redis"
)

// Notifier receives outbound booking events after commit.
// Implemented by notify.Dispatcher.
type Notifier interface {
	Enqueue(evt notify.Event)
}

// Service aggregates every business-logic interface.
type Service struct {
	Auth        AuthService
	User        UserService
	Visitor     VisitorService
	Vehicle     VehicleService
	Appointment AppointmentService
	Schedule    ScheduleService
	Export      ExportService
}

// NewService wires the service implementations.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:        NewUserService(repo, logger),
		Visitor:     NewVisitorService(repo, logger),
		Vehicle:     NewVehicleService(repo, logger),
		Appointment: NewAppointmentService(&cfg.Booking, repo, notifier, logger),
		Schedule:    NewScheduleService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
