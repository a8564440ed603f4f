package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Password always holds the bcrypt hash,
// never the raw password.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	IsAdmin  bool      `json:"is_admin"`
	// TokenValidAfter is the per-user watermark: any token issued before
	// this instant is rejected even if it has not expired and its jti is
	// not individually revoked. Bumped on password change.
	TokenValidAfter *time.Time `json:"token_valid_after"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

// PublicUser is the user view returned to unauthenticated callers.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
