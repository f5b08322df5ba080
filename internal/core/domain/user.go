package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Tokens carrying any other
// value are rejected at verification time.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a raw claim value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User models an account record as held by the credential store.
// PasswordHash never leaves the persistence and signin paths; every
// outward-facing view goes through Public().
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsOnline     bool
	LastSeen     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward-facing account view. It has no password
// hash field at all, so no serialization path can leak it.
type PublicUser struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsOnline  bool       `json:"is_online,omitempty"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Public builds the outward-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsOnline:  u.IsOnline,
		LastSeen:  u.LastSeen,
		CreatedAt: u.CreatedAt,
	}
}
