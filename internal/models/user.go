package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// Valid reports whether the role is one of the closed set. Role-based
// branching elsewhere switches exhaustively over these two values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"` // bcrypt hash
	Role     UserRole `json:"role" gorm:"not null;size:16;default:STUDENT"`

	// Present only for STUDENT users, never for ADMIN.
	Student *Student `json:"student,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
