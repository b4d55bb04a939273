package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account on the site. Admins are the staff users
// who approve listings and manage published content.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null" binding:"required,max=150"`
	Email     string    `json:"email" gorm:"size:254;index" binding:"omitempty,email,max=254"`
	Password  string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Role      Role      `json:"role" gorm:"type:varchar(10);default:'user'" binding:"required,oneof=user admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsStaff reports whether the user may use the admin console.
func (u User) IsStaff() bool {
	return u.Role == RoleAdmin
}
