package domain

import "time"

// UserRole links a user to a role. A pair is held at most once.
type UserRole struct {
	ID        int64
	UserID    int64
	RoleID    int64
	CreatedAt time.Time
}
