package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is the 1:1 profile attached to a STUDENT user. It shares its
// lifetime with the owning User row (created together at registration,
// removed by the user-delete cascade).
type Student struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"userId" gorm:"uniqueIndex;not null;size:36"`

	FullName        string  `json:"fullName" gorm:"not null;size:100"`
	ClassName       *string `json:"className" gorm:"size:50"`
	AcademicYear    *string `json:"academicYear" gorm:"size:20"`
	PhoneNumber     *string `json:"phoneNumber" gorm:"size:20"`
	ProfileImageURL *string `json:"profileImageUrl" gorm:"size:500"`

	User      *User      `json:"-" gorm:"foreignKey:UserID"`
	Favorites []Favorite `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Ratings   []Rating   `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
