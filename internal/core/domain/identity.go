package domain

import (
	"fmt"
	"time"
)

// Role discriminates the three identity variants. Each role owns its own
// table, login-identifier namespace, and audit trail.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleMember   Role = "member"
)

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleMember:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IdentifierField names the login identifier used by the role. Admins log in
// with a username, everyone else with an email address.
func (r Role) IdentifierField() string {
	if r == RoleAdmin {
		return "username"
	}
	return "email"
}

// EmployeeRole enumerates the job tags an employee can hold.
type EmployeeRole string

const (
	EmployeeRoleIT      EmployeeRole = "IT"
	EmployeeRoleTrainer EmployeeRole = "Trainer"
)

// ParseEmployeeRole converts a wire value into an EmployeeRole.
func ParseEmployeeRole(s string) (EmployeeRole, error) {
	switch EmployeeRole(s) {
	case EmployeeRoleIT, EmployeeRoleTrainer:
		return EmployeeRole(s), nil
	default:
		return "", fmt.Errorf("unknown employee role %q", s)
	}
}

// MemberStatus enumerates possible membership states.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
	MemberStatusFrozen   MemberStatus = "frozen"
)

// ParseMemberStatus converts a wire value into a MemberStatus.
func ParseMemberStatus(s string) (MemberStatus, error) {
	switch MemberStatus(s) {
	case MemberStatusActive, MemberStatusInactive, MemberStatusFrozen:
		return MemberStatus(s), nil
	default:
		return "", fmt.Errorf("unknown member status %q", s)
	}
}

// Identity is the stored representation of an admin, employee, or member.
// Role-specific attributes are nil for the roles that do not carry them.
type Identity struct {
	ID           int64
	Role         Role
	Name         string
	Identifier   string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Employee attributes.
	EmployeeRole *EmployeeRole
	Salary       *int64

	// Member attributes.
	Phone          *string
	MembershipPlan *string
	JoinDate       *time.Time
	Status         *MemberStatus
}

// ActivityStatus reports the snapshot recorded alongside audit entries.
// Admins and employees are always considered active; members depend on
// their membership status.
func (i Identity) ActivityStatus() string {
	if i.Role == RoleMember && i.Status != nil && *i.Status != MemberStatusActive {
		return "deactivated"
	}
	return "active"
}

// AccessRole is the role claim embedded in session tokens. Employees carry
// their job tag so route guards can distinguish IT from trainers.
func (i Identity) AccessRole() string {
	if i.Role == RoleEmployee && i.EmployeeRole != nil {
		return string(*i.EmployeeRole)
	}
	return string(i.Role)
}

// MutableAttributes returns the update allow-list for the role. Anything
// outside this list is rejected before it can reach query text.
func (r Role) MutableAttributes() []string {
	switch r {
	case RoleAdmin:
		return []string{"name", "username"}
	case RoleEmployee:
		return []string{"name", "email", "role", "salary"}
	case RoleMember:
		return []string{"name", "email", "phone_number", "membership_plan", "status"}
	default:
		return nil
	}
}
