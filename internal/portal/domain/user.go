package domain

import "time"

type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string // argon2 encoded
	FullName         string
	Role             string // "user" or "admin"
	TwoFactorEnabled bool
	TwoFactorSecret  *string    // TOTP secret (nullable, base32 encoded), never serialized
	LastLogin        *time.Time // nullable
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PublicView strips credential material for API responses. The TOTP
// secret and backup codes must never leave the service through a user
// read.
func (u User) PublicView() PublicUser {
	return PublicUser{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FullName:         u.FullName,
		Role:             u.Role,
		TwoFactorEnabled: u.TwoFactorEnabled,
		LastLogin:        u.LastLogin,
	}
}

// PublicUser is the safe-to-serialize user representation.
type PublicUser struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	FullName         string     `json:"fullName"`
	Role             string     `json:"role"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
}
