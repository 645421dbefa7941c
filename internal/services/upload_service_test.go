package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestUploadService_RejectsBadInput(t *testing.T) {
	svc := NewUploadService(nil, testLogger(), UploadConfig{Bucket: "images"})
	ctx := context.Background()

	tests := []struct {
		name        string
		contentType string
		size        int64
	}{
		{"unsupported type", "application/pdf", 1024},
		{"executable", "application/octet-stream", 1024},
		{"empty file", "image/png", 0},
		{"oversized file", "image/png", 6 << 20},
		{"negative size", "image/jpeg", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadImage(ctx, strings.NewReader("data"), "photo.png", tt.contentType, tt.size)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("UploadImage() error = %v, want validation errors", err)
			}
		})
	}
}

func TestUploadService_StorageNotConfigured(t *testing.T) {
	svc := NewUploadService(nil, testLogger(), UploadConfig{Bucket: "images"})

	_, err := svc.UploadImage(context.Background(), strings.NewReader("data"), "photo.png", "image/png", 1024)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("UploadImage() error = %v, want ErrStorageUnavailable", err)
	}
}
