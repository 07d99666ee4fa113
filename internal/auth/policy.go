package auth

// Action is something a caller can attempt against the attendance
// data. The rule table below is the single source of truth for who is
// allowed to do what; handlers and repositories consult it instead of
// scattering role conditionals.
type Action int

const (
	// ActionRegisterAttendance covers check-in and check-out scans.
	ActionRegisterAttendance Action = iota
	ActionListOwnAttendance
	ActionListAllAttendance
	ActionApproveAttendance
	ActionListWorkers
	ActionManageSites
	ActionViewOwnStats
	ActionViewAllStats
)

// Allowed decides whether role may perform action. self reports
// whether the caller is acting on their own records; it only matters
// for actions that workers may perform on themselves.
func Allowed(role string, action Action, self bool) bool {
	switch action {
	case ActionRegisterAttendance:
		if role == RoleSupervisor || role == RoleAdmin {
			return true
		}
		return role == RoleWorker && self
	case ActionListOwnAttendance, ActionViewOwnStats:
		return role == RoleWorker || role == RoleSupervisor || role == RoleAdmin
	case ActionListAllAttendance, ActionApproveAttendance, ActionListWorkers, ActionViewAllStats:
		return role == RoleSupervisor || role == RoleAdmin
	case ActionManageSites:
		return role == RoleAdmin
	}
	return false
}
