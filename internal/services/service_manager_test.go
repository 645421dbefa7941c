package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

func newTestServiceManager() ServiceManager {
	return NewServiceManager(nil, newMemoryRepository(), testLogger(), validator.NewValidator(),
		cache.NewCacheManager(nil), events.NewMockEventPublisher(testLogger()), nil,
		ServiceManagerConfig{
			JWT:        JWTConfig{Secret: "test-secret", Expiry: time.Hour},
			BcryptCost: 4,
			Pagination: testPagination(),
		})
}

func TestServiceManager_Initialize(t *testing.T) {
	ctx := context.Background()
	sm := newTestServiceManager()

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	// second Initialize is a no-op
	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	if sm.Auth() == nil {
		t.Error("Auth() is nil")
	}
	if sm.Student() == nil {
		t.Error("Student() is nil")
	}
	if sm.Lesson() == nil {
		t.Error("Lesson() is nil")
	}
	if sm.Favorite() == nil {
		t.Error("Favorite() is nil")
	}
	if sm.Rating() == nil {
		t.Error("Rating() is nil")
	}
	if sm.School() == nil {
		t.Error("School() is nil")
	}
	if sm.Dashboard() == nil {
		t.Error("Dashboard() is nil")
	}
	if sm.Upload() == nil {
		t.Error("Upload() is nil")
	}
	if sm.EventRelay() == nil {
		t.Error("EventRelay() is nil")
	}

	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
	if err := sm.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestServiceManager_PanicsBeforeInitialize(t *testing.T) {
	sm := newTestServiceManager()

	defer func() {
		if recover() == nil {
			t.Error("Auth() did not panic before Initialize")
		}
	}()
	sm.Auth()
}
