package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type UploadService interface {
	UploadImage(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (*models.UploadResult, error)
}

// UploadConfig describes the object storage target.
type UploadConfig struct {
	Bucket    string
	PublicURL string
}

// ===== SERVICE IMPLEMENTATION =====

type uploadService struct {
	client *minio.Client
	logger *slog.Logger
	config UploadConfig
}

func NewUploadService(client *minio.Client, logger *slog.Logger, config UploadConfig) UploadService {
	return &uploadService{
		client: client,
		logger: logger,
		config: config,
	}
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const maxImageSize = 5 << 20 // 5 MiB

func (s *uploadService) UploadImage(ctx context.Context, reader io.Reader, filename, contentType string, size int64) (*models.UploadResult, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, validator.ValidationErrors{{
			Field:   "file",
			Message: fmt.Sprintf("unsupported content type %q", contentType),
			Rule:    "content_type",
		}}
	}
	if size <= 0 || size > maxImageSize {
		return nil, validator.ValidationErrors{{
			Field:   "file",
			Message: "file must be between 1 byte and 5 MiB",
			Rule:    "size",
		}}
	}

	// object storage is optional at boot; without it uploads are rejected,
	// not crashed
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}

	objectName := fmt.Sprintf("images/%s/%s%s",
		time.Now().UTC().Format("2006/01"),
		uuid.NewString(),
		ext)

	info, err := s.client.PutObject(ctx, s.config.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	s.logger.Info("image uploaded",
		"object", objectName,
		"size", info.Size,
		"original_name", path.Base(filename))

	return &models.UploadResult{
		URL:         s.publicURL(objectName),
		ObjectName:  objectName,
		Size:        info.Size,
		ContentType: contentType,
	}, nil
}

func (s *uploadService) publicURL(objectName string) string {
	base := strings.TrimSuffix(s.config.PublicURL, "/")
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimSuffix(s.client.EndpointURL().String(), "/"), s.config.Bucket)
		return fmt.Sprintf("%s/%s", base, objectName)
	}
	return fmt.Sprintf("%s/%s/%s", base, s.config.Bucket, objectName)
}
