package domain

import (
	"time"
)

type Role string

const (
	RoleViewer  Role = "viewer"
	RolePlanner Role = "planner"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	OrgID        string    `json:"orgID"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
