package domain

import (
	"strings"

	dErrors "greentax/pkg/domain-errors"
)

// Role is the actor's function in the scheme. It is carried in the bearer
// token and checked by route guards only; services never branch on it.
type Role string

const (
	RoleSecretary Role = "SECRETARY"
	RoleAdmin     Role = "BMC_ADMIN"
	RoleResident  Role = "RESIDENT"
)

// ParseRole validates a role string. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleSecretary, RoleAdmin, RoleResident:
		return r, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
}

func (r Role) String() string { return string(r) }
