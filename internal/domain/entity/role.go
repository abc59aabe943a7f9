// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleSender indicates a user who creates delivery orders.
	RoleSender Role = "sender"
	// RoleTraveler indicates a user who offers luggage capacity via travel plans.
	RoleTraveler Role = "traveler"
	// RoleAdmin indicates an administrative principal.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSender, RoleTraveler, RoleAdmin:
		return true
	default:
		return false
	}
}

// Gender represents a user's declared gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid checks if the Gender is a valid value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}
