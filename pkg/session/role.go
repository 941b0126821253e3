package session

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the marketplace role of a signed-in user.
type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
	RoleAdmin    Role = "admin"
)

// Roles lists every role in display order.
var Roles = []Role{RoleBorrower, RoleLender, RoleAdmin}

// ParseRole accepts role names in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Roles, r) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// Principal is the signed-in user as reported by the marketplace backend.
type Principal struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	APIToken string `json:"-"`
}

// Can reports whether the principal holds one of roles. Admins pass every check.
func (p Principal) Can(roles ...Role) bool {
	if p.Role == RoleAdmin {
		return true
	}
	return slices.Contains(roles, p.Role)
}
