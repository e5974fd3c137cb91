package astro

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/cache"
	"github.com/admin/astro-core/internal/ports/persistence"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Get(context.Context, interface{}, string, ...interface{}) error    { return nil }
func (t *fakeTx) Select(context.Context, interface{}, string, ...interface{}) error { return nil }
func (t *fakeTx) Exec(context.Context, string, ...interface{}) error                { return nil }
func (t *fakeTx) ExecWithResult(context.Context, string, ...interface{}) (int64, error) {
	return 0, nil
}
func (t *fakeTx) NamedExec(context.Context, string, interface{}) error { return nil }
func (t *fakeTx) NamedExecWithResult(context.Context, string, interface{}) (int64, error) {
	return 0, nil
}
func (t *fakeTx) QueryRow(context.Context, string, ...interface{}) *sqlx.Row { return nil }
func (t *fakeTx) Commit() error                                             { t.committed = true; return nil }
func (t *fakeTx) Rollback() error                                           { t.rolledBack = true; return nil }

type fakeChartRepo struct {
	mu        sync.Mutex
	charts    map[uuid.UUID]*domain.BirthChart
	pending   map[uuid.UUID]*domain.BirthChart
	upsertErr error
	gets      int
}

func newFakeChartRepo() *fakeChartRepo {
	return &fakeChartRepo{charts: map[uuid.UUID]*domain.BirthChart{}}
}

func (r *fakeChartRepo) Upsert(_ context.Context, chart *domain.BirthChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.charts[chart.UserID] = chart
	return nil
}

func (r *fakeChartRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.BirthChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	chart, ok := r.charts[userID]
	if !ok {
		return nil, fmt.Errorf("get chart %s: %w", userID, domain.ErrChartNotFound)
	}
	return chart, nil
}

func (r *fakeChartRepo) Delete(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.charts, userID)
	return nil
}

func (r *fakeChartRepo) BeginTx(context.Context) (persistence.Transaction, error) {
	return &fakeTx{}, nil
}

// WithTransaction применяет отложенные записи только при успехе fn
func (r *fakeChartRepo) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	tx := &fakeTx{}
	r.mu.Lock()
	r.pending = map[uuid.UUID]*domain.BirthChart{}
	r.mu.Unlock()

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		r.mu.Lock()
		r.pending = nil
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	for id, chart := range r.pending {
		r.charts[id] = chart
	}
	r.pending = nil
	r.mu.Unlock()
	return tx.Commit()
}

func (r *fakeChartRepo) UpsertTx(_ context.Context, _ persistence.Transaction, chart *domain.BirthChart) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[chart.UserID] = chart
	return nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*domain.BirthLocation
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[uuid.UUID]*domain.BirthLocation{}}
}

func (r *fakeLocationRepo) Upsert(_ context.Context, location *domain.BirthLocation) error {
	r.locations[location.UserID] = location
	return nil
}

func (r *fakeLocationRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.BirthLocation, error) {
	loc, ok := r.locations[userID]
	if !ok {
		return nil, domain.ErrMissingLocation
	}
	return loc, nil
}

func (r *fakeLocationRepo) UpsertTx(ctx context.Context, _ persistence.Transaction, location *domain.BirthLocation) error {
	return r.Upsert(ctx, location)
}

type fakeProfileRepo struct {
	signs map[uuid.UUID]domain.Sign
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{signs: map[uuid.UUID]domain.Sign{}}
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	sign, ok := r.signs[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.UserProfile{UserID: userID, ZodiacSign: &sign}, nil
}

func (r *fakeProfileRepo) UpdateZodiac(_ context.Context, userID uuid.UUID, sign domain.Sign, _ string) error {
	r.signs[userID] = sign
	return nil
}

func (r *fakeProfileRepo) UpdateZodiacTx(ctx context.Context, _ persistence.Transaction, userID uuid.UUID, sign domain.Sign, birthdate string) error {
	return r.UpdateZodiac(ctx, userID, sign, birthdate)
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *fakeCache) Close() error { return nil }

type fakeProducer struct {
	published []*domain.BirthChart
	err       error
}

func (p *fakeProducer) PublishChartCalculated(_ context.Context, chart *domain.BirthChart) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, chart)
	return nil
}

func (p *fakeProducer) Send(context.Context, string, []byte) error { return p.err }
func (p *fakeProducer) Close() error                               { return nil }

type fakeArchive struct {
	paths []string
	err   error
}

func (a *fakeArchive) Archive(_ context.Context, chart *domain.BirthChart) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	path := fmt.Sprintf("charts/%s/%d.json", chart.UserID, len(a.paths))
	a.paths = append(a.paths, path)
	return path, nil
}

func (a *fakeArchive) History(context.Context, uuid.UUID) ([]string, error) {
	return a.paths, nil
}

type testEnv struct {
	svc       *Service
	charts    *fakeChartRepo
	locations *fakeLocationRepo
	profiles  *fakeProfileRepo
	cache     *fakeCache
	producer  *fakeProducer
	archive   *fakeArchive
}

var (
	fixedNow    = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	fixedUserID = uuid.MustParse("6f1c2b9e-3d4a-4b8e-9c1f-2a7d5e8b0c11")
)

func newTestEnv() *testEnv {
	env := &testEnv{
		charts:    newFakeChartRepo(),
		locations: newFakeLocationRepo(),
		profiles:  newFakeProfileRepo(),
		cache:     newFakeCache(),
		producer:  &fakeProducer{},
		archive:   &fakeArchive{},
	}

	svc, err := New(env.charts, env.locations, env.profiles, env.producer, env.archive, env.cache, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		panic(err)
	}
	svc.Now = func() time.Time { return fixedNow }
	env.svc = svc
	return env
}

func ptr[T any](v T) *T { return &v }

func validInput(userID uuid.UUID) domain.CreateChartInput {
	return domain.CreateChartInput{
		UserID:            userID,
		BirthDate:         "1990-06-15",
		BirthTime:         ptr("14:30"),
		BirthTimezone:     ptr("Europe/Moscow"),
		BirthTimeAccuracy: domain.AccuracyExact,
		BirthCity:         "Moscow",
		BirthCountry:      "Russia",
		Latitude:          ptr(55.7558),
		Longitude:         ptr(37.6173),
	}
}
