package birthLocationRepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/admin/astro-core/internal/adapters/secondary/storage/pg"
	"github.com/admin/astro-core/internal/domain"
	ports "github.com/admin/astro-core/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (ports.IBirthLocationRepo, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := pg.NewDB(sqlx.NewDb(raw, "sqlmock"))
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

var locationColumnNames = []string{
	"user_id", "birth_date", "birth_time", "birth_timezone", "birth_time_accuracy",
	"birth_city", "birth_state", "birth_country", "latitude", "longitude", "created_at", "updated_at",
}

func TestUpsert(t *testing.T) {
	repo, mock := newRepo(t)
	birthTime := "14:30"
	now := time.Now().UTC()
	location := &domain.BirthLocation{
		UserID:            uuid.New(),
		BirthDate:         "1990-05-15",
		BirthTime:         &birthTime,
		BirthTimeAccuracy: domain.AccuracyExact,
		BirthCity:         "Moscow",
		BirthCountry:      "Russia",
		Latitude:          55.7558,
		Longitude:         37.6173,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec("INSERT INTO birth_locations").
		WithArgs(location.UserID, "1990-05-15", "14:30", nil, "exact",
			"Moscow", nil, "Russia", 55.7558, 37.6173, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), location))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO birth_locations").WillReturnError(errors.New("constraint violation"))

	err := repo.Upsert(context.Background(), &domain.BirthLocation{UserID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert birth location")
}

func TestGetByUserID(t *testing.T) {
	repo, mock := newRepo(t)
	userID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM birth_locations WHERE user_id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(locationColumnNames).AddRow(
			userID.String(), "1990-05-15", nil, "Europe/Moscow", "unknown",
			"Moscow", nil, "Russia", 55.7558, 37.6173, now, now,
		))

	location, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, location.UserID)
	assert.Nil(t, location.BirthTime)
	require.NotNil(t, location.BirthTimezone)
	assert.Equal(t, "Europe/Moscow", *location.BirthTimezone)
	assert.Equal(t, domain.AccuracyUnknown, location.BirthTimeAccuracy)
	assert.False(t, location.HasKnownTime())
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM birth_locations").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(locationColumnNames))

	_, err := repo.GetByUserID(context.Background(), userID)
	assert.True(t, errors.Is(err, domain.ErrMissingLocation))
}
