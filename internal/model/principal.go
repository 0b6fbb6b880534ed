package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleViewer     Role = "viewer"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID   uuid.UUID
	FullName string
	Role     Role
}

func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
func (p Principal) IsTechnician() bool { return p.Role == RoleTechnician }
func (p Principal) IsViewer() bool     { return p.Role == RoleViewer }

func (p Principal) CanMutate() bool {
	return p.Role == RoleAdmin || p.Role == RoleTechnician
}
