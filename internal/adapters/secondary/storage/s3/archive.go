package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/storage"
	"github.com/google/uuid"
)

const (
	chartsPrefix      = "charts"
	archiveTimeLayout = "20060102T150405Z"
)

// ChartArchive хранит каждую рассчитанную версию карты как JSON:
// charts/<user_id>/<calculated_at>.json
type ChartArchive struct {
	files storage.IS3Client
	log   *slog.Logger
}

func NewChartArchive(files storage.IS3Client, log *slog.Logger) storage.IChartArchive {
	return &ChartArchive{
		files: files,
		log:   log,
	}
}

func chartPath(chart *domain.BirthChart) string {
	return fmt.Sprintf("%s/%s/%s.json", chartsPrefix, chart.UserID, chart.CalculatedAt.UTC().Format(archiveTimeLayout))
}

// Archive сохраняет карту и возвращает путь объекта
func (a *ChartArchive) Archive(ctx context.Context, chart *domain.BirthChart) (string, error) {
	payload, err := json.Marshal(chart)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart: %w", err)
	}

	path := chartPath(chart)
	if err := a.files.PutFile(ctx, path, payload, "application/json"); err != nil {
		return "", err
	}
	return path, nil
}

// History пути архивных версий карты, новые первыми
func (a *ChartArchive) History(ctx context.Context, userID uuid.UUID) ([]string, error) {
	files, err := a.files.ListFiles(ctx, fmt.Sprintf("%s/%s/", chartsPrefix, userID))
	if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	a.log.Debug("chart history listed", "user_id", userID, "versions", len(files))
	return files, nil
}
