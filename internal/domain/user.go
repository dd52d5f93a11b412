package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Caller identifies the authenticated user making a request. It is threaded
// explicitly through every service call instead of being read from ambient
// request state.
type Caller struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the caller holds the elevated role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
