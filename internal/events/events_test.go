package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEventEnvelope(t *testing.T) {
	before := time.Now().UTC()
	event := NewEvent(TopicLessonRated, LessonRatedEvent{LessonID: "l1", Value: 5})
	after := time.Now().UTC()

	if event.ID == "" {
		t.Error("id is empty")
	}
	if event.Type != TopicLessonRated {
		t.Errorf("type = %s, want %s", event.Type, TopicLessonRated)
	}
	if event.Source != "eduportal-service" {
		t.Errorf("source = %s", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("version = %s", event.Version)
	}
	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", event.Timestamp, before, after)
	}

	payload, ok := event.Data.(LessonRatedEvent)
	if !ok {
		t.Fatalf("data is %T, want LessonRatedEvent", event.Data)
	}
	if payload.LessonID != "l1" || payload.Value != 5 {
		t.Errorf("payload = %+v", payload)
	}

	// ids are unique per event
	other := NewEvent(TopicLessonRated, nil)
	if other.ID == event.ID {
		t.Error("two events share an id")
	}
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(discardLogger())
	ctx := context.Background()

	if err := publisher.Publish(ctx, TopicStudentRegistered, StudentRegisteredEvent{StudentID: "s1"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := publisher.Publish(ctx, TopicFavoriteAdded, FavoriteAddedEvent{LessonID: "l1"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("published = %d, want 2", len(published))
	}
	if published[0].Type != TopicStudentRegistered {
		t.Errorf("first type = %s", published[0].Type)
	}
	if published[1].Type != TopicFavoriteAdded {
		t.Errorf("second type = %s", published[1].Type)
	}

	// snapshot, not a live view
	published = published[:0]
	if len(publisher.GetPublishedEvents()) != 2 {
		t.Error("snapshot shares backing storage with the publisher")
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("events survived ClearEvents")
	}
}

func TestNoopEventPublisher(t *testing.T) {
	publisher := NewNoopEventPublisher(discardLogger())

	if err := publisher.Publish(context.Background(), TopicLessonRated, nil); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
