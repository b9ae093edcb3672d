package models

import "fmt"

type Role string

const (
	RoleTraveler Role = "traveler"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

var allRoles = []Role{RoleTraveler, RoleVendor, RoleAdmin}

func ParseRole(s string) (Role, error) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q, must be one of %v", s, allRoles)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// RoleSet is the set of roles a route accepts. Each route builds its own.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}
