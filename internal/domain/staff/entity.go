package staff

import "time"

// Role enum. Drivers are recorded on the vehicle, not here; only turnboys
// and loaders are paid through the payroll engine.
type Role string

const (
	RoleTurnboy Role = "turnboy"
	RoleLoader  Role = "loader"
)

var Roles = []string{string(RoleTurnboy), string(RoleLoader)}

// Staff represents a paid crew member (turnboy or loader).
type Staff struct {
	ID          string
	Name        string
	PhoneNumber *string
	Role        Role
	// IsLoader marks staff who can take loading work in addition to their
	// home role. Always true for loader-role staff.
	IsLoader   bool
	DateJoined time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanWorkAs reports whether the staff member may be assigned the given role
// on a delivery.
func (s Staff) CanWorkAs(r Role) bool {
	if r == s.Role {
		return true
	}
	return r == RoleLoader && s.IsLoader
}

// Normalize enforces the loader capability invariant.
func (s *Staff) Normalize() {
	if s.Role == RoleLoader {
		s.IsLoader = true
	}
}
