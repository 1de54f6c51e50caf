package domain

import dErrors "landtitle/pkg/domain-errors"

// Role is the authorization role carried by a session.
// Invariant: the value must be one of the supported roles.
type Role string

const (
	// RoleUser covers buyers and sellers; the same account can be either
	// depending on which side of a purchase it is on.
	RoleUser Role = "user"
	// RoleInspector is the land inspector who verifies parcels, reviews
	// purchases, captures identity photos, and decides transfers.
	RoleInspector Role = "inspector"
)

var validRoles = map[Role]bool{
	RoleUser:      true,
	RoleInspector: true,
}

// ParseRole constructs a Role from external input.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}

// Principal is the authenticated actor behind a request. It is resolved from a
// server-side session and passed explicitly into every state-changing call.
type Principal struct {
	UserID    UserID
	SessionID SessionID
	Role      Role
}

func (p Principal) IsAuthenticated() bool {
	return !p.UserID.IsNil()
}

func (p Principal) IsInspector() bool {
	return p.Role == RoleInspector
}
