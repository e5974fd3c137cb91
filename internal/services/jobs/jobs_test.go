package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubJob struct {
	name  string
	mu    sync.Mutex
	calls int
	errs  []error
}

func (j *stubJob) Name() string                    { return j.name }
func (j *stubJob) NextRun(now time.Time) time.Time { return now.Add(time.Hour) }

func (j *stubJob) Run(context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls++
	if len(j.errs) == 0 {
		return nil
	}
	err := j.errs[0]
	j.errs = j.errs[1:]
	return err
}

type stubAlerter struct {
	messages []string
}

func (a *stubAlerter) SendAlert(_ context.Context, message string) error {
	a.messages = append(a.messages, message)
	return nil
}

type stubPositions struct {
	days []time.Time
	err  error
}

func (s *stubPositions) UpdateCachedPositions(_ context.Context, day time.Time) error {
	s.days = append(s.days, day)
	return s.err
}

type stubLunar struct {
	start time.Time
	days  int
}

func (s *stubLunar) WarmLunarCalendar(_ context.Context, start time.Time, days int) error {
	s.start, s.days = start, days
	return nil
}

func TestParseSchedule(t *testing.T) {
	schedule, err := ParseSchedule("0 5 * * *", "UTC")
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 4, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC), schedule.Next(now).UTC())

	after := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 2, 5, 0, 0, 0, time.UTC), schedule.Next(after).UTC())
	assert.Equal(t, "0 5 * * *", schedule.String())
}

func TestParseSchedule_Timezone(t *testing.T) {
	schedule, err := ParseSchedule("0 5 * * *", "Europe/Moscow")
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC), schedule.Next(now).UTC())
}

func TestParseSchedule_Invalid(t *testing.T) {
	_, err := ParseSchedule("every day", "UTC")
	assert.Error(t, err)

	_, err = ParseSchedule("0 5 * * *", "Nowhere/City")
	assert.Error(t, err)
}

func TestScheduler_RunOnceRetriesUntilSuccess(t *testing.T) {
	alerter := &stubAlerter{}
	s := NewScheduler(discardLogger(), alerter, []time.Duration{0, 0})
	job := &stubJob{name: "flaky", errs: []error{errors.New("first"), errors.New("second")}}
	s.Register(job)

	require.NoError(t, s.RunOnce(context.Background(), "flaky"))
	assert.Equal(t, 3, job.calls)
	assert.Empty(t, alerter.messages)
}

func TestScheduler_RunOnceAlertsAfterRetries(t *testing.T) {
	alerter := &stubAlerter{}
	s := NewScheduler(discardLogger(), alerter, []time.Duration{0})
	job := &stubJob{name: "broken", errs: []error{errors.New("boom"), errors.New("boom again")}}
	s.Register(job)

	err := s.RunOnce(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, 2, job.calls)
	require.Len(t, alerter.messages, 1)
	assert.Contains(t, alerter.messages[0], "broken")
	assert.Contains(t, alerter.messages[0], "boom again")
}

func TestScheduler_RunOnceUnknownJob(t *testing.T) {
	s := NewScheduler(discardLogger(), nil, []time.Duration{})
	assert.Error(t, s.RunOnce(context.Background(), "missing"))
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewScheduler(discardLogger(), nil, []time.Duration{})
	s.Register(&stubJob{name: "hourly"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestPositionsUpdater_WarmsTodayAndTomorrow(t *testing.T) {
	schedule, err := ParseSchedule("0 5 * * *", "UTC")
	require.NoError(t, err)
	stub := &stubPositions{}
	job := NewPositionsUpdater(stub, schedule, discardLogger())
	job.now = func() time.Time { return time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, stub.days, 2)
	assert.Equal(t, 1, stub.days[0].Day())
	assert.Equal(t, 2, stub.days[1].Day())
	assert.Equal(t, positionsUpdaterName, job.Name())
}

func TestPositionsUpdater_PropagatesError(t *testing.T) {
	schedule, _ := ParseSchedule("0 5 * * *", "")
	job := NewPositionsUpdater(&stubPositions{err: errors.New("redis down")}, schedule, discardLogger())

	assert.Error(t, job.Run(context.Background()))
}

func TestLunarCalendarWarmer(t *testing.T) {
	schedule, _ := ParseSchedule("10 5 * * *", "UTC")
	stub := &stubLunar{}
	job := NewLunarCalendarWarmer(stub, schedule, 0, discardLogger())
	fixed := time.Date(2024, 6, 1, 5, 10, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 30, stub.days)
	assert.Equal(t, fixed, stub.start)
	assert.Equal(t, time.Date(2024, 6, 2, 5, 10, 0, 0, time.UTC), job.NextRun(fixed).UTC())
}
