package jobs

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

// Config расписания фоновых задач, cron-выражения в часовом поясе Timezone
type Config struct {
	Enabled           bool   `envconfig:"ENABLED" default:"true"`
	WarmOnStart       bool   `envconfig:"WARM_ON_START" default:"true"`
	Timezone          string `envconfig:"TIMEZONE" default:"Europe/Moscow"`
	PositionsSchedule string `envconfig:"POSITIONS_SCHEDULE" default:"0 5 * * *"`
	LunarSchedule     string `envconfig:"LUNAR_SCHEDULE" default:"10 5 * * *"`
	LunarDays         int    `envconfig:"LUNAR_DAYS" default:"30"`
}

// Schedule следующее время запуска по cron-выражению
type Schedule struct {
	spec     string
	schedule cron.Schedule
}

// ParseSchedule стандартный 5-польный cron в часовом поясе tz (пустой = UTC)
func ParseSchedule(spec, tz string) (*Schedule, error) {
	full := spec
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid job timezone %q: %w", tz, err)
		}
		full = fmt.Sprintf("CRON_TZ=%s %s", tz, spec)
	}

	schedule, err := cron.ParseStandard(full)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	return &Schedule{spec: spec, schedule: schedule}, nil
}

// Next первое время запуска строго после now
func (s *Schedule) Next(now time.Time) time.Time {
	return s.schedule.Next(now)
}

func (s *Schedule) String() string {
	return s.spec
}
