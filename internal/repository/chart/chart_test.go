package chartRepo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/admin/astro-core/internal/adapters/secondary/storage/pg"
	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/persistence"
	ports "github.com/admin/astro-core/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (ports.IChartRepo, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := pg.NewDB(sqlx.NewDb(raw, "sqlmock"))
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func sampleChart() *domain.BirthChart {
	rising := domain.SignLibra
	asc := 187.5
	return &domain.BirthChart{
		UserID:       uuid.MustParse("8c6f1b7e-1d0a-4a53-9b1e-0d7c1c2f5a11"),
		SunSign:      domain.SignAries,
		MoonSign:     domain.SignCancer,
		RisingSign:   &rising,
		Ascendant:    &asc,
		HouseSystem:  "whole_sign",
		Positions:    map[domain.Body]domain.CelestialPosition{},
		CalculatedAt: time.Date(2024, time.March, 21, 10, 0, 0, 0, time.UTC),
		Version:      "1.0.0",
	}
}

func TestUpsert(t *testing.T) {
	repo, mock := newRepo(t)
	chart := sampleChart()

	mock.ExpectExec("INSERT INTO birth_charts").
		WithArgs(chart.UserID, "aries", "cancer", "libra", "whole_sign", sqlmock.AnyArg(), "1.0.0", chart.CalculatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), chart))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_NullRisingSign(t *testing.T) {
	repo, mock := newRepo(t)
	chart := sampleChart()
	chart.RisingSign = nil
	chart.HouseSystem = ""

	mock.ExpectExec("INSERT INTO birth_charts").
		WithArgs(chart.UserID, "aries", "cancer", nil, nil, sqlmock.AnyArg(), "1.0.0", chart.CalculatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), chart))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertTx_UsesTransaction(t *testing.T) {
	repo, mock := newRepo(t)
	chart := sampleChart()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO birth_charts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithTransaction(context.Background(), func(ctx context.Context, tx persistence.Transaction) error {
		return repo.UpsertTx(ctx, tx, chart)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserID(t *testing.T) {
	repo, mock := newRepo(t)
	chart := sampleChart()
	payload, err := json.Marshal(chart)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT chart FROM birth_charts WHERE user_id = \\$1").
		WithArgs(chart.UserID).
		WillReturnRows(sqlmock.NewRows([]string{"chart"}).AddRow(payload))

	got, err := repo.GetByUserID(context.Background(), chart.UserID)
	require.NoError(t, err)
	assert.Equal(t, chart.SunSign, got.SunSign)
	require.NotNil(t, got.RisingSign)
	assert.Equal(t, domain.SignLibra, *got.RisingSign)
	assert.InDelta(t, 187.5, *got.Ascendant, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT chart FROM birth_charts").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"chart"}))

	_, err := repo.GetByUserID(context.Background(), userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrChartNotFound))
}

func TestGetByUserID_DatabaseError(t *testing.T) {
	repo, mock := newRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT chart FROM birth_charts").
		WithArgs(userID).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByUserID(context.Background(), userID)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrChartNotFound))
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t)
	userID := uuid.New()

	mock.ExpectExec("DELETE FROM birth_charts").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
