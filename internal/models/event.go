package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventRecord is the transactional outbox row for domain events. It is
// written inside the same transaction as the domain change; PublishedAt is
// set once the broker has accepted the message.
type EventRecord struct {
	ID      string         `json:"id" gorm:"primaryKey;size:36"`
	Topic   string         `json:"topic" gorm:"not null;size:100;index"`
	Payload datatypes.JSON `json:"payload" gorm:"not null"`

	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt" gorm:"index"`
}

func (EventRecord) TableName() string {
	return "event_records"
}

func (e *EventRecord) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
