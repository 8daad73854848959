package models

import "time"

// User represents the users table in the database.
// Registration and session handling live outside this service,
// only the admin user list reads this table.
type User struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
}
