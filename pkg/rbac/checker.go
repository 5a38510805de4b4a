// Package rbac encodes the role-based access matrix as pure, stateless
// predicates over (user, resource) pairs. Administrative roles (admin and
// superadmin) satisfy every predicate regardless of resource-level access
// flags; that override is deliberate and load-bearing.
package rbac

import "github.com/coachdesk/coachdesk/pkg/model"

// IsAdmin reports whether the user carries an administrative role.
func IsAdmin(user model.User) bool {
	return user.Role.AtLeast(model.RoleAdmin)
}

// CanAccessModule reports whether the user may read the module. Admins
// bypass the module's access level entirely.
func CanAccessModule(user model.User, module model.Module) bool {
	if IsAdmin(user) {
		return true
	}
	switch module.AccessLevel {
	case model.AccessPublic:
		return true
	case model.AccessFacilitators:
		return user.Role == model.RoleFacilitator || user.Role == model.RoleCoach
	}
	return false
}

// CanUploadModule reports whether the user may create or edit modules.
func CanUploadModule(user model.User) bool {
	return IsAdmin(user) || user.Role == model.RoleFacilitator
}

// CanPublishModule reports whether the user may publish modules.
func CanPublishModule(user model.User) bool {
	return IsAdmin(user)
}

// CanManageUsers reports whether the user may list and edit other accounts.
func CanManageUsers(user model.User) bool {
	return IsAdmin(user)
}

// CanManagePrograms reports whether the user may create or edit programs.
func CanManagePrograms(user model.User) bool {
	return IsAdmin(user)
}

// CanViewAnalytics reports whether the user may read the admin dashboard
// aggregates.
func CanViewAnalytics(user model.User) bool {
	return IsAdmin(user)
}

// CanScheduleSessions reports whether the user may create or edit sessions.
func CanScheduleSessions(user model.User) bool {
	return IsAdmin(user) || user.Role == model.RoleFacilitator || user.Role == model.RoleCoach
}
