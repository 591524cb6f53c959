package entity

import "fmt"

// Role is the access role stored on a Patient row.
type Role string

const (
	RolePatient     Role = "PATIENT"
	RoleOperator    Role = "OPERATOR"
	RoleAdmin       Role = "ADMIN"
	RoleChiefDoctor Role = "CHIEF_DOCTOR"
)

// Roles lists every known role.
var Roles = []Role{RolePatient, RoleOperator, RoleAdmin, RoleChiefDoctor}

// ParseRole converts a stored value into a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) IsStaff() bool {
	return r == RoleOperator || r == RoleAdmin || r == RoleChiefDoctor
}

// Permission names an action guarded by the role table below.
type Permission string

const (
	PermChatOperate      Permission = "chat.operate"
	PermPatientChat      Permission = "chat.patient"
	PermUnreadCounts     Permission = "admin.unread_counts"
	PermLettersManage    Permission = "letters.manage"
	PermFeedbackModerate Permission = "feedback.moderate"
	PermCategoriesManage Permission = "categories.manage"
	PermAuditRead        Permission = "audit.read"
)

var permissionTable = map[Permission][]Role{
	PermChatOperate:      {RoleOperator, RoleAdmin, RoleChiefDoctor},
	PermPatientChat:      {RolePatient},
	PermUnreadCounts:     {RoleOperator, RoleAdmin, RoleChiefDoctor},
	PermLettersManage:    {RoleChiefDoctor},
	PermFeedbackModerate: {RoleAdmin, RoleChiefDoctor},
	PermCategoriesManage: {RolePatient, RoleOperator, RoleAdmin, RoleChiefDoctor},
	PermAuditRead:        {RoleAdmin, RoleChiefDoctor},
}

// AllowedRoles returns the roles granted a permission.
func AllowedRoles(p Permission) []Role {
	return permissionTable[p]
}

// Can reports whether the role holds the permission. Unknown permissions are denied.
func (r Role) Can(p Permission) bool {
	for _, allowed := range permissionTable[p] {
		if allowed == r {
			return true
		}
	}
	return false
}
