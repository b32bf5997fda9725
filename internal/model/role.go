package model

// Role is the closed set of account roles.
type Role string

const (
	RoleSystemAdmin Role = "system_admin" // full administrative rights
	RoleSchoolAdmin Role = "school_admin" // coordinator with an availability calendar
	RoleGuard       Role = "guard"        // gate staff, read-only on appointments
	RoleUser        Role = "user"         // plain account
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleSchoolAdmin, RoleGuard, RoleUser:
		return true
	}
	return false
}

// Operation names an action gated by the access policy.
type Operation string

const (
	OpManageUsers        Operation = "manage_users"
	OpCreateAppointment  Operation = "create_appointment"
	OpMutateAppointment  Operation = "mutate_appointment"
	OpReadAppointments   Operation = "read_appointments"
	OpRegisterVisitor    Operation = "register_visitor"
	OpRegisterVehicle    Operation = "register_vehicle"
	OpManageSchedules    Operation = "manage_schedules"
	OpQueryAvailability  Operation = "query_availability"
	OpExportAppointments Operation = "export_appointments"
)

// capabilities maps each role to the operations it may perform.
// Ownership narrowing for school_admin mutations happens in the service layer.
var capabilities = map[Role]map[Operation]bool{
	RoleSystemAdmin: {
		OpManageUsers:        true,
		OpCreateAppointment:  true,
		OpMutateAppointment:  true,
		OpReadAppointments:   true,
		OpRegisterVisitor:    true,
		OpRegisterVehicle:    true,
		OpManageSchedules:    true,
		OpQueryAvailability:  true,
		OpExportAppointments: true,
	},
	RoleSchoolAdmin: {
		OpCreateAppointment:  true,
		OpMutateAppointment:  true, // own appointments only
		OpReadAppointments:   true,
		OpRegisterVisitor:    true,
		OpRegisterVehicle:    true,
		OpManageSchedules:    true, // own calendar only
		OpQueryAvailability:  true,
		OpExportAppointments: true,
	},
	RoleGuard: {
		OpReadAppointments:   true,
		OpQueryAvailability:  true,
		OpExportAppointments: true,
	},
	RoleUser: {
		OpReadAppointments:  true,
		OpQueryAvailability: true,
	},
}

// Can reports whether the role is allowed to perform op.
func (r Role) Can(op Operation) bool {
	return capabilities[r][op]
}
