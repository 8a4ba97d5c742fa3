package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleClient       UserRole = "client"
	UserRolePractitioner UserRole = "practitioner"
	UserRoleAdmin        UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleClient || r == UserRolePractitioner || r == UserRoleAdmin
}

type Practitioner struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Client struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
