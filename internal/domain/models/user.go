package models

import "time"

// User представляет пользователя
type User struct {
	ID        int64
	Username  string
	PassHash  []byte
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}
