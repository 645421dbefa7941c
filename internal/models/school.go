package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// School is a singleton-by-convention profile: reads always take the first
// row, updates create one when none exists.
type School struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Name        string  `json:"name" gorm:"not null;size:200"`
	LogoURL     *string `json:"logoUrl" gorm:"size:500"`
	PhoneNumber *string `json:"phoneNumber" gorm:"size:20"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (School) TableName() string {
	return "schools"
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
