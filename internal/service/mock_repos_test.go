package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/notify"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

// ── mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByName(_ context.Context, name, paternal, maternal string) (*model.User, error) {
	for _, u := range m.users {
		if u.Name == name && u.PaternalSurname == paternal &&
			(maternal == "" || u.MaternalSurname == maternal) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByArea(_ context.Context, area string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Area == area {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── mock VisitorRepository ──

type mockVisitorRepo struct {
	visitors map[string]*model.Visitor
	seq      int
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{visitors: make(map[string]*model.Visitor)}
}

func (m *mockVisitorRepo) Create(_ context.Context, visitor *model.Visitor) error {
	if visitor.VisitorID == "" {
		m.seq++
		visitor.VisitorID = fmt.Sprintf("visitor-%d", m.seq)
	}
	m.visitors[visitor.VisitorID] = visitor
	return nil
}

func (m *mockVisitorRepo) GetByID(_ context.Context, id string) (*model.Visitor, error) {
	if v, ok := m.visitors[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) GetByName(_ context.Context, name, paternal, maternal string) (*model.Visitor, error) {
	for _, v := range m.visitors {
		if v.Name == name && v.PaternalSurname == paternal &&
			(maternal == "" || v.MaternalSurname == maternal) {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) GetByDocument(_ context.Context, documentNumber string) (*model.Visitor, error) {
	for _, v := range m.visitors {
		if v.DocumentNumber == documentNumber {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitorRepo) Update(_ context.Context, visitor *model.Visitor) error {
	m.visitors[visitor.VisitorID] = visitor
	return nil
}

func (m *mockVisitorRepo) Delete(_ context.Context, id string) error {
	delete(m.visitors, id)
	return nil
}

func (m *mockVisitorRepo) List(_ context.Context) ([]model.Visitor, error) {
	var result []model.Visitor
	for _, v := range m.visitors {
		result = append(result, *v)
	}
	return result, nil
}

// ── mock VehicleRepository ──

type mockVehicleRepo struct {
	vehicles map[string]*model.Vehicle
	seq      int
}

func newMockVehicleRepo() *mockVehicleRepo {
	return &mockVehicleRepo{vehicles: make(map[string]*model.Vehicle)}
}

func (m *mockVehicleRepo) Create(_ context.Context, vehicle *model.Vehicle) error {
	if vehicle.VehicleID == "" {
		m.seq++
		vehicle.VehicleID = fmt.Sprintf("vehicle-%d", m.seq)
	}
	m.vehicles[vehicle.VehicleID] = vehicle
	return nil
}

func (m *mockVehicleRepo) GetByID(_ context.Context, id string) (*model.Vehicle, error) {
	if v, ok := m.vehicles[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVehicleRepo) GetByPlate(_ context.Context, plate string) (*model.Vehicle, error) {
	for _, v := range m.vehicles {
		if v.Plate == plate {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVehicleRepo) Delete(_ context.Context, id string) error {
	delete(m.vehicles, id)
	return nil
}

func (m *mockVehicleRepo) List(_ context.Context) ([]model.Vehicle, error) {
	var result []model.Vehicle
	for _, v := range m.vehicles {
		result = append(result, *v)
	}
	return result, nil
}

// ── mock AppointmentRepository ──

type mockAppointmentRepo struct {
	appts    map[string]*model.Appointment
	visitors *mockVisitorRepo // used to hydrate the Visitor relation
	vehicles *mockVehicleRepo
	seq      int
}

func newMockAppointmentRepo(visitors *mockVisitorRepo, vehicles *mockVehicleRepo) *mockAppointmentRepo {
	return &mockAppointmentRepo{
		appts:    make(map[string]*model.Appointment),
		visitors: visitors,
		vehicles: vehicles,
	}
}

func (m *mockAppointmentRepo) hydrate(a *model.Appointment) *model.Appointment {
	cp := *a
	if m.visitors != nil {
		if v, ok := m.visitors.visitors[cp.VisitorID]; ok {
			cp.Visitor = v
		}
	}
	if m.vehicles != nil && cp.VehicleID != nil {
		if v, ok := m.vehicles.vehicles[*cp.VehicleID]; ok {
			cp.Vehicle = v
		}
	}
	return &cp
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *model.Appointment) error {
	if appt.AppointmentID == "" {
		m.seq++
		appt.AppointmentID = fmt.Sprintf("appt-%d", m.seq)
	}
	m.appts[appt.AppointmentID] = appt
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	if a, ok := m.appts[id]; ok {
		return m.hydrate(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppointmentRepo) Update(_ context.Context, appt *model.Appointment) error {
	m.appts[appt.AppointmentID] = appt
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id string) error {
	delete(m.appts, id)
	return nil
}

func (m *mockAppointmentRepo) List(_ context.Context, date, area, visited, creatorID string) ([]model.Appointment, error) {
	var result []model.Appointment
	for _, a := range m.appts {
		if date != "" && a.Date != date {
			continue
		}
		if area != "" && a.Area != area {
			continue
		}
		if visited != "" && (a.VisitedPersonName == nil || !strings.Contains(*a.VisitedPersonName, visited)) {
			continue
		}
		if creatorID != "" && a.CreatedBy != creatorID {
			continue
		}
		result = append(result, *m.hydrate(a))
	}
	return result, nil
}

func (m *mockAppointmentRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Appointment, error) {
	var result []model.Appointment
	for _, a := range m.appts {
		if a.CreatedBy == creatorID {
			result = append(result, *m.hydrate(a))
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) ListByVisitor(_ context.Context, visitorID string) ([]model.Appointment, error) {
	var result []model.Appointment
	for _, a := range m.appts {
		if a.VisitorID == visitorID {
			result = append(result, *m.hydrate(a))
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) ListByDate(_ context.Context, date string) ([]model.Appointment, error) {
	var result []model.Appointment
	for _, a := range m.appts {
		if a.Date == date {
			result = append(result, *m.hydrate(a))
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) ListByDateLocked(ctx context.Context, date string) ([]model.Appointment, error) {
	return m.ListByDate(ctx, date)
}

func (m *mockAppointmentRepo) CountByVisitorExcluding(_ context.Context, visitorID, excludeID string) (int64, error) {
	var n int64
	for _, a := range m.appts {
		if a.VisitorID == visitorID && a.AppointmentID != excludeID {
			n++
		}
	}
	return n, nil
}

func (m *mockAppointmentRepo) CountByVehicleExcluding(_ context.Context, vehicleID, excludeID string) (int64, error) {
	var n int64
	for _, a := range m.appts {
		if a.VehicleID != nil && *a.VehicleID == vehicleID && a.AppointmentID != excludeID {
			n++
		}
	}
	return n, nil
}

func (m *mockAppointmentRepo) CompleteElapsed(_ context.Context) (int64, error) {
	now := time.Now()
	var n int64
	for _, a := range m.appts {
		if a.Status != model.AppointmentActive {
			continue
		}
		at, err := time.ParseInLocation(model.DateLayout+" "+model.TimeLayout, a.Date+" "+a.Time, time.Local)
		if err != nil {
			continue
		}
		if at.Before(now) {
			a.Status = model.AppointmentCompleted
			n++
		}
	}
	return n, nil
}

// ── mock CoordinatorScheduleRepository ──

type mockCoordinatorScheduleRepo struct {
	blocks map[string]*model.CoordinatorSchedule
	seq    int
}

func newMockCoordinatorScheduleRepo() *mockCoordinatorScheduleRepo {
	return &mockCoordinatorScheduleRepo{blocks: make(map[string]*model.CoordinatorSchedule)}
}

func (m *mockCoordinatorScheduleRepo) Create(_ context.Context, block *model.CoordinatorSchedule) error {
	if block.ScheduleID == "" {
		m.seq++
		block.ScheduleID = fmt.Sprintf("cs-%d", m.seq)
	}
	m.blocks[block.ScheduleID] = block
	return nil
}

func (m *mockCoordinatorScheduleRepo) GetByID(_ context.Context, id string) (*model.CoordinatorSchedule, error) {
	if b, ok := m.blocks[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoordinatorScheduleRepo) Update(_ context.Context, block *model.CoordinatorSchedule) error {
	m.blocks[block.ScheduleID] = block
	return nil
}

func (m *mockCoordinatorScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.blocks, id)
	return nil
}

func (m *mockCoordinatorScheduleRepo) ListByOwner(_ context.Context, userID string) ([]model.CoordinatorSchedule, error) {
	var result []model.CoordinatorSchedule
	for _, b := range m.blocks {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockCoordinatorScheduleRepo) ListByOwnerAndDay(_ context.Context, userID string, dayOfWeek int) ([]model.CoordinatorSchedule, error) {
	var result []model.CoordinatorSchedule
	for _, b := range m.blocks {
		if b.UserID == userID && b.DayOfWeek == dayOfWeek {
			result = append(result, *b)
		}
	}
	return result, nil
}

// ── mock AreaScheduleRepository ──

type mockAreaScheduleRepo struct {
	blocks map[string]*model.AreaSchedule
	seq    int
}

func newMockAreaScheduleRepo() *mockAreaScheduleRepo {
	return &mockAreaScheduleRepo{blocks: make(map[string]*model.AreaSchedule)}
}

func (m *mockAreaScheduleRepo) Create(_ context.Context, block *model.AreaSchedule) error {
	if block.ScheduleID == "" {
		m.seq++
		block.ScheduleID = fmt.Sprintf("as-%d", m.seq)
	}
	m.blocks[block.ScheduleID] = block
	return nil
}

func (m *mockAreaScheduleRepo) GetByID(_ context.Context, id string) (*model.AreaSchedule, error) {
	if b, ok := m.blocks[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAreaScheduleRepo) Update(_ context.Context, block *model.AreaSchedule) error {
	m.blocks[block.ScheduleID] = block
	return nil
}

func (m *mockAreaScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.blocks, id)
	return nil
}

func (m *mockAreaScheduleRepo) ListByArea(_ context.Context, area string) ([]model.AreaSchedule, error) {
	var result []model.AreaSchedule
	for _, b := range m.blocks {
		if b.Area == area {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockAreaScheduleRepo) ListByAreaAndDay(_ context.Context, area string, dayOfWeek int) ([]model.AreaSchedule, error) {
	var result []model.AreaSchedule
	for _, b := range m.blocks {
		if b.Area == area && b.DayOfWeek == dayOfWeek {
			result = append(result, *b)
		}
	}
	return result, nil
}

// ── mock AtomicRunner & Notifier ──

// mockAtomic runs the unit of work against the same repository; mocks
// have no transactions to scope.
type mockAtomic struct {
	repo *repository.Repository
}

func (m *mockAtomic) RunInTx(_ context.Context, fn func(r *repository.Repository) error) error {
	return fn(m.repo)
}

type mockNotifier struct {
	events []notify.Event
}

func (m *mockNotifier) Enqueue(evt notify.Event) {
	m.events = append(m.events, evt)
}

// ── shared fixtures ──

func newTestRepo() *repository.Repository {
	visitors := newMockVisitorRepo()
	vehicles := newMockVehicleRepo()
	repo := &repository.Repository{
		User:                newMockUserRepo(),
		Visitor:             visitors,
		Vehicle:             vehicles,
		Appointment:         newMockAppointmentRepo(visitors, vehicles),
		CoordinatorSchedule: newMockCoordinatorScheduleRepo(),
		AreaSchedule:        newMockAreaScheduleRepo(),
	}
	repo.Atomic = &mockAtomic{repo: repo}
	return repo
}
