// Package rbac maps agency roles onto the finance API's permissions.
package rbac

import (
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

type Permission string

const (
	PermissionViewReports      Permission = "reports:view"
	PermissionManageMilestones Permission = "milestones:manage"
	PermissionConfigureFinance Permission = "projects:configure_finance"
)

var rolePermissions = map[model.Role][]Permission{
	model.RoleAdmin: {
		PermissionViewReports,
		PermissionManageMilestones,
		PermissionConfigureFinance,
	},
	model.RoleProjectManager: {
		PermissionViewReports,
		PermissionManageMilestones,
		PermissionConfigureFinance,
	},
	model.RoleDeveloper: {PermissionViewReports},
	model.RoleDesigner:  {PermissionViewReports},
	model.RoleQC:        {PermissionViewReports},
}

// HasPermission reports whether a role carries a permission.
func HasPermission(role model.Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission returns a PermissionDeniedError when the role lacks the
// permission.
func CheckPermission(role model.Role, permission Permission) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{Role: role, Permission: permission}
	}
	return nil
}

type PermissionDeniedError struct {
	Role       model.Role
	Permission Permission
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}
