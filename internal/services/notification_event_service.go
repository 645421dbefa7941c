package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

// recordEvent appends a domain event to the transactional outbox. Called
// inside the same transaction as the state change it describes, so an
// event exists exactly when its change committed.
func recordEvent(ctx context.Context, repo repositories.Repository, topic string, data interface{}) error {
	payload, err := json.Marshal(events.NewEvent(topic, data))
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	record := &models.EventRecord{
		Topic:   topic,
		Payload: datatypes.JSON(payload),
	}
	if err := repo.Event().Create(ctx, nil, record); err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	return nil
}

// NotificationEventService relays outbox records to the message bus.
type NotificationEventService interface {
	// Run polls the outbox until the context is cancelled.
	Run(ctx context.Context)
	// RelayPending publishes one batch and reports how many went out.
	RelayPending(ctx context.Context) (int, error)
}

type notificationEventService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger

	pollInterval time.Duration
	batchSize    int
}

func NewNotificationEventService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) NotificationEventService {
	return &notificationEventService{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		pollInterval: 5 * time.Second,
		batchSize:    100,
	}
}

func (s *notificationEventService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.logger.Info("event relay started", "poll_interval", s.pollInterval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("event relay stopped")
			return
		case <-ticker.C:
			if n, err := s.RelayPending(ctx); err != nil {
				s.logger.Error("event relay batch failed", "error", err)
			} else if n > 0 {
				s.logger.Debug("relayed events", "count", n)
			}
		}
	}
}

func (s *notificationEventService) RelayPending(ctx context.Context) (int, error) {
	records, err := s.repo.Event().ListUnpublished(ctx, nil, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending events: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	published := make([]string, 0, len(records))
	for _, record := range records {
		var event events.Event
		if err := json.Unmarshal(record.Payload, &event); err != nil {
			s.logger.Error("dropping malformed outbox record",
				"record_id", record.ID,
				"error", err)
			published = append(published, record.ID)
			continue
		}

		// the stored envelope goes out verbatim so the event ID is stable
		// across retries
		if err := s.publisher.PublishEvent(ctx, &event); err != nil {
			// stop the batch, the next tick retries from here
			break
		}
		published = append(published, record.ID)
	}

	if len(published) == 0 {
		return 0, nil
	}

	if err := s.repo.Event().MarkPublished(ctx, nil, published); err != nil {
		return 0, fmt.Errorf("failed to mark events published: %w", err)
	}

	return len(published), nil
}
