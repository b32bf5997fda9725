package model

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSystemAdmin, RoleSchoolAdmin, RoleGuard, RoleUser} {
		if !r.Valid() {
			t.Errorf("%s should be a valid role", r)
		}
	}
	for _, r := range []Role{"", "admin", "superuser", "SYSTEM_ADMIN"} {
		if r.Valid() {
			t.Errorf("%q should not be a valid role", r)
		}
	}
}

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role Role
		op   Operation
		want bool
	}{
		{RoleSystemAdmin, OpManageUsers, true},
		{RoleSystemAdmin, OpMutateAppointment, true},
		{RoleSchoolAdmin, OpManageUsers, false},
		{RoleSchoolAdmin, OpCreateAppointment, true},
		{RoleSchoolAdmin, OpManageSchedules, true},
		{RoleGuard, OpCreateAppointment, false},
		{RoleGuard, OpReadAppointments, true},
		{RoleGuard, OpExportAppointments, true},
		{RoleUser, OpReadAppointments, true},
		{RoleUser, OpMutateAppointment, false},
		{RoleUser, OpExportAppointments, false},
	}

	for _, tc := range cases {
		if got := tc.role.Can(tc.op); got != tc.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
}

func TestRoleCan_UnknownRoleDeniesEverything(t *testing.T) {
	unknown := Role("superuser")
	for _, op := range []Operation{OpManageUsers, OpCreateAppointment, OpReadAppointments} {
		if unknown.Can(op) {
			t.Errorf("an unknown role must not be granted %s", op)
		}
	}
}
