package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics carried on the event bus.
const (
	TopicStudentRegistered = "student.registered"
	TopicLessonRated       = "lesson.rated"
	TopicFavoriteAdded     = "favorite.added"
)

const (
	eventSource  = "eduportal-service"
	eventVersion = "1.0"
)

// Event is the envelope every published message shares.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent wraps a payload in the standard envelope.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

type StudentRegisteredEvent struct {
	StudentID string `json:"student_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
}

type LessonRatedEvent struct {
	LessonID      string  `json:"lesson_id"`
	StudentID     string  `json:"student_id"`
	Value         int     `json:"value"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

type FavoriteAddedEvent struct {
	LessonID  string `json:"lesson_id"`
	StudentID string `json:"student_id"`
}
