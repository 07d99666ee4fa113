package auth

import "testing"

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action Action
		self   bool
		want   bool
	}{
		{"worker registers own scan", RoleWorker, ActionRegisterAttendance, true, true},
		{"worker registers for another", RoleWorker, ActionRegisterAttendance, false, false},
		{"supervisor registers for another", RoleSupervisor, ActionRegisterAttendance, false, true},
		{"admin registers for another", RoleAdmin, ActionRegisterAttendance, false, true},

		{"worker lists own attendance", RoleWorker, ActionListOwnAttendance, true, true},
		{"worker lists all attendance", RoleWorker, ActionListAllAttendance, false, false},
		{"supervisor lists all attendance", RoleSupervisor, ActionListAllAttendance, false, true},
		{"admin lists all attendance", RoleAdmin, ActionListAllAttendance, false, true},

		{"worker approves", RoleWorker, ActionApproveAttendance, false, false},
		{"supervisor approves", RoleSupervisor, ActionApproveAttendance, false, true},
		{"admin approves", RoleAdmin, ActionApproveAttendance, false, true},

		{"worker lists workers", RoleWorker, ActionListWorkers, false, false},
		{"supervisor lists workers", RoleSupervisor, ActionListWorkers, false, true},

		{"supervisor manages sites", RoleSupervisor, ActionManageSites, false, false},
		{"admin manages sites", RoleAdmin, ActionManageSites, false, true},

		{"worker views own stats", RoleWorker, ActionViewOwnStats, true, true},
		{"worker views all stats", RoleWorker, ActionViewAllStats, false, false},
		{"supervisor views all stats", RoleSupervisor, ActionViewAllStats, false, true},

		{"unknown role denied", "ghost", ActionListOwnAttendance, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.action, tt.self); got != tt.want {
				t.Errorf("Allowed(%q, %v, %v) = %v, want %v", tt.role, tt.action, tt.self, got, tt.want)
			}
		})
	}
}
