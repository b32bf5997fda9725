package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	User                UserRepository
	Visitor             VisitorRepository
	Vehicle             VehicleRepository
	Appointment         AppointmentRepository
	CoordinatorSchedule CoordinatorScheduleRepository
	AreaSchedule        AreaScheduleRepository

	// Atomic scopes a group of operations to one transaction.
	Atomic AtomicRunner
}

// AtomicRunner runs fn as one atomic unit of work. The Repository passed to
// fn is bound to the transaction; any error rolls everything back.
type AtomicRunner interface {
	RunInTx(ctx context.Context, fn func(r *Repository) error) error
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	r := newRepos(db)
	r.Atomic = &gormAtomic{db: db}
	return r
}

// newRepos builds the per-table repositories over the given handle,
// which may be the root connection or a transaction.
func newRepos(db *gorm.DB) *Repository {
	return &Repository{
		User:                NewUserRepo(db),
		Visitor:             NewVisitorRepo(db),
		Vehicle:             NewVehicleRepo(db),
		Appointment:         NewAppointmentRepo(db),
		CoordinatorSchedule: NewCoordinatorScheduleRepo(db),
		AreaSchedule:        NewAreaScheduleRepo(db),
	}
}

type gormAtomic struct {
	db *gorm.DB
}

func (a *gormAtomic) RunInTx(ctx context.Context, fn func(r *Repository) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := newRepos(tx)
		txRepo.Atomic = &nestedAtomic{repo: txRepo}
		return fn(txRepo)
	})
}

// nestedAtomic reuses the enclosing transaction instead of opening another.
type nestedAtomic struct {
	repo *Repository
}

func (a *nestedAtomic) RunInTx(ctx context.Context, fn func(r *Repository) error) error {
	return fn(a.repo)
}
