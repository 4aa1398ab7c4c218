package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
}

const (
	MinUsernameLen = 3
	MaxUsernameLen = 80
	MinPasswordLen = 8
)
