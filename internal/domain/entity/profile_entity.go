package entity

import "time"

// Role gates directory mutation and listing.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Profile binds an identity to a role. It is written once at signup.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }

// Identity is what the external identity provider vouches for.
type Identity struct {
	ID    string
	Email string
}
