package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const positionsUpdaterName = "positions-updater"

type positionsCacher interface {
	UpdateCachedPositions(ctx context.Context, day time.Time) error
}

// PositionsUpdater раз в сутки кладёт в кэш положения планет на сегодня и завтра
type PositionsUpdater struct {
	astroService positionsCacher
	schedule     *Schedule
	log          *slog.Logger
	now          func() time.Time
}

// NewPositionsUpdater создаёт новую джобу для обновления позиций планет
func NewPositionsUpdater(astroService positionsCacher, schedule *Schedule, log *slog.Logger) *PositionsUpdater {
	return &PositionsUpdater{
		astroService: astroService,
		schedule:     schedule,
		log:          log,
		now:          time.Now,
	}
}

func (j *PositionsUpdater) Name() string {
	return positionsUpdaterName
}

func (j *PositionsUpdater) NextRun(now time.Time) time.Time {
	return j.schedule.Next(now)
}

func (j *PositionsUpdater) Run(ctx context.Context) error {
	today := j.now().UTC()

	for _, day := range []time.Time{today, today.AddDate(0, 0, 1)} {
		if err := j.astroService.UpdateCachedPositions(ctx, day); err != nil {
			return fmt.Errorf("update positions for %s: %w", day.Format("2006-01-02"), err)
		}
	}

	j.log.Debug("planetary positions refreshed", "job_name", positionsUpdaterName)
	return nil
}
