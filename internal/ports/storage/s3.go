package storage

import (
	"context"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
)

// IS3Client интерфейс для работы с S3-совместимым хранилищем (MinIO)
type IS3Client interface {
	PutFile(ctx context.Context, path string, data []byte, contentType string) error
	GetFile(ctx context.Context, path string) ([]byte, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	GetPresignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}

// IChartArchive архив рассчитанных карт (история пересчётов)
type IChartArchive interface {
	Archive(ctx context.Context, chart *domain.BirthChart) (string, error)
	History(ctx context.Context, userID uuid.UUID) ([]string, error)
}
