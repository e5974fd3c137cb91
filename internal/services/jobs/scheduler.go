package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/admin/astro-core/internal/pkg/metrics"
	"github.com/admin/astro-core/internal/ports/jobs"
	"github.com/admin/astro-core/internal/ports/service"
)

// DefaultRetries паузы между повторами упавшей джобы: 1m + 10m + 30m
var DefaultRetries = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	alerterService service.IAlerterService
	retries        []time.Duration
	log            *slog.Logger
	wg             sync.WaitGroup
}

// NewScheduler создаёт новый планировщик джоб. alerterService может быть nil
func NewScheduler(log *slog.Logger, alerterService service.IAlerterService, retries []time.Duration) *Scheduler {
	if retries == nil {
		retries = DefaultRetries
	}
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		alerterService: alerterService,
		retries:        retries,
		log:            log,
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы и сразу возвращается
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		job := job
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}()
	}

	return nil
}

// Wait ждёт остановки всех джоб после отмены контекста
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// RunOnce выполняет джобу по имени немедленно, с повторами
func (s *Scheduler) RunOnce(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			return s.execute(ctx, job)
		}
	}
	return fmt.Errorf("job %s is not registered", name)
}

// runJob запускает отдельную джобу в цикле до отмены контекста
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := time.Now()
		nextRun := job.NextRun(now)
		s.log.Debug("job scheduled", "job_name", jobName, "next_run", nextRun)

		timer := time.NewTimer(nextRun.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			if err := s.execute(ctx, job); err == nil {
				s.log.Info("job executed successfully", "job_name", jobName)
			}
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job jobs.Job) error {
	jobName := job.Name()
	started := time.Now()

	err, attemptErrors := s.executeJobWithRetry(ctx, job)
	metrics.RecordJobRun(jobName, time.Since(started), err == nil)
	if err == nil {
		return nil
	}

	s.log.Error("job failed after all retries",
		"job_name", jobName,
		"error", err,
		"attempt_errors", formatAttempts(attemptErrors),
	)
	s.sendAlert(ctx, jobName, attemptErrors)
	return err
}

// jobAttemptError ошибка конкретной попытки выполнения джобы
type jobAttemptError struct {
	attempt int
	err     error
}

// executeJobWithRetry возвращает финальную ошибку и ошибки всех попыток
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) (error, []jobAttemptError) {
	jobName := job.Name()
	var attemptErrors []jobAttemptError

	err := job.Run(ctx)
	if err == nil {
		return nil, nil
	}
	attemptErrors = append(attemptErrors, jobAttemptError{attempt: 1, err: err})
	s.log.Warn("job execution failed, will retry",
		"job_name", jobName,
		"attempt", 1,
		"retries_remaining", len(s.retries),
		"error", err,
	)

	for i, retryDelay := range s.retries {
		attemptNum := i + 2

		timer := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err(), attemptErrors
		case <-timer.C:
		}

		if err := job.Run(ctx); err != nil {
			attemptErrors = append(attemptErrors, jobAttemptError{attempt: attemptNum, err: err})
			s.log.Warn("job retry failed",
				"job_name", jobName,
				"attempt", attemptNum,
				"retries_remaining", len(s.retries)-i-1,
				"error", err,
			)
			continue
		}
		return nil, nil
	}

	return fmt.Errorf("all retry attempts failed (total attempts: %d)", 1+len(s.retries)), attemptErrors
}

func formatAttempts(attemptErrors []jobAttemptError) string {
	lines := make([]string, 0, len(attemptErrors))
	for _, a := range attemptErrors {
		lines = append(lines, fmt.Sprintf("attempt %d: %s", a.attempt, a.err))
	}
	return strings.Join(lines, "; ")
}

// sendAlert алертит на финальную ошибку после ретраев
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []jobAttemptError) {
	if s.alerterService == nil {
		return
	}

	var message strings.Builder
	message.WriteString("⚠️ Финальная ошибка планировщика, ретраи исчерпаны\n\n")
	message.WriteString(fmt.Sprintf("Джоба: %s\n\n", jobName))
	message.WriteString("Ошибки попыток:\n")
	for _, a := range attemptErrors {
		message.WriteString(fmt.Sprintf("Попытка %d: %s\n", a.attempt, a.err))
	}

	if alertErr := s.alerterService.SendAlert(ctx, message.String()); alertErr != nil {
		s.log.Warn("failed to send job failure alert",
			"job_name", jobName,
			"error", alertErr,
		)
	}
}
