package enums

import (
	"fmt"
	"strings"
)

// MemberRole is the staff role carried in the access token.
type MemberRole string

const (
	// MemberRoleAdmin may perform destructive actions such as deleting orders.
	MemberRoleAdmin MemberRole = "admin"
	// MemberRoleStaff is the default operational role.
	MemberRoleStaff MemberRole = "staff"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleAdmin, MemberRoleStaff:
		return true
	}
	return false
}

func ParseMemberRole(value string) (MemberRole, error) {
	r := MemberRole(strings.ToLower(strings.TrimSpace(value)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid member role %q", value)
	}
	return r, nil
}
