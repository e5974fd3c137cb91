package jobs

import (
	"context"
	"log/slog"
	"time"
)

const lunarCalendarWarmerName = "lunar-calendar-warmer"

type lunarCalendarCacher interface {
	WarmLunarCalendar(ctx context.Context, start time.Time, days int) error
}

// LunarCalendarWarmer прогревает кэш лунного календаря на days дней вперёд
type LunarCalendarWarmer struct {
	astroService lunarCalendarCacher
	schedule     *Schedule
	days         int
	log          *slog.Logger
	now          func() time.Time
}

func NewLunarCalendarWarmer(astroService lunarCalendarCacher, schedule *Schedule, days int, log *slog.Logger) *LunarCalendarWarmer {
	if days <= 0 {
		days = 30
	}
	return &LunarCalendarWarmer{
		astroService: astroService,
		schedule:     schedule,
		days:         days,
		log:          log,
		now:          time.Now,
	}
}

func (j *LunarCalendarWarmer) Name() string {
	return lunarCalendarWarmerName
}

func (j *LunarCalendarWarmer) NextRun(now time.Time) time.Time {
	return j.schedule.Next(now)
}

func (j *LunarCalendarWarmer) Run(ctx context.Context) error {
	if err := j.astroService.WarmLunarCalendar(ctx, j.now(), j.days); err != nil {
		return err
	}
	j.log.Debug("lunar calendar warmed", "job_name", lunarCalendarWarmerName, "days", j.days)
	return nil
}
