package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson.Rating is a cached aggregate over the lesson's Rating rows. It is
// recomputed inside the same transaction as every rating write and must never
// drift from avg(ratings.value).
type Lesson struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Title       string  `json:"title" gorm:"not null;size:200"`
	Description string  `json:"description" gorm:"not null;type:text"`
	ImageURL    *string `json:"imageUrl" gorm:"size:500"`
	Rating      float64 `json:"rating" gorm:"not null;default:0"`

	Favorites []Favorite `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Ratings   []Rating   `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Favorite is the student<->lesson junction for saved lessons.
type Favorite struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	StudentID string `json:"studentId" gorm:"not null;size:36;uniqueIndex:idx_favorites_student_lesson"`
	LessonID  string `json:"lessonId" gorm:"not null;size:36;uniqueIndex:idx_favorites_student_lesson"`

	Lesson *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Rating holds one live rating per (student, lesson); re-rating overwrites
// via upsert, it never accumulates history.
type Rating struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	StudentID string `json:"studentId" gorm:"not null;size:36;uniqueIndex:idx_ratings_student_lesson"`
	LessonID  string `json:"lessonId" gorm:"not null;size:36;uniqueIndex:idx_ratings_student_lesson"`
	Value     int    `json:"value" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Rating) TableName() string {
	return "ratings"
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
