package birthLocationRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/persistence"
	ports "github.com/admin/astro-core/internal/ports/repository"
	"github.com/google/uuid"
)

type locationColumns struct {
	TableName         string
	UserID            string
	BirthDate         string
	BirthTime         string
	BirthTimezone     string
	BirthTimeAccuracy string
	BirthCity         string
	BirthState        string
	BirthCountry      string
	Latitude          string
	Longitude         string
	CreatedAt         string
	UpdatedAt         string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns locationColumns
}

// New репозиторий данных рождения
func New(db persistence.Persistence, log *slog.Logger) ports.IBirthLocationRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: locationColumns{
			TableName:         "birth_locations",
			UserID:            "user_id",
			BirthDate:         "birth_date",
			BirthTime:         "birth_time",
			BirthTimezone:     "birth_timezone",
			BirthTimeAccuracy: "birth_time_accuracy",
			BirthCity:         "birth_city",
			BirthState:        "birth_state",
			BirthCountry:      "birth_country",
			Latitude:          "latitude",
			Longitude:         "longitude",
			CreatedAt:         "created_at",
			UpdatedAt:         "updated_at",
		},
	}
}

func (r *Repository) allColumns() string {
	c := r.columns
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		c.UserID, c.BirthDate, c.BirthTime, c.BirthTimezone, c.BirthTimeAccuracy,
		c.BirthCity, c.BirthState, c.BirthCountry, c.Latitude, c.Longitude,
		c.CreatedAt, c.UpdatedAt)
}

// upsertQuery именованный запрос, created_at при конфликте не трогаем
func (r *Repository) upsertQuery() string {
	c := r.columns
	return fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES (:user_id, :birth_date, :birth_time, :birth_timezone, :birth_time_accuracy,
			:birth_city, :birth_state, :birth_country, :latitude, :longitude, :created_at, :updated_at)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		c.TableName, r.allColumns(),
		c.UserID,
		c.BirthDate, c.BirthDate, c.BirthTime, c.BirthTime, c.BirthTimezone, c.BirthTimezone,
		c.BirthTimeAccuracy, c.BirthTimeAccuracy,
		c.BirthCity, c.BirthCity, c.BirthState, c.BirthState, c.BirthCountry, c.BirthCountry,
		c.Latitude, c.Latitude,
		c.Longitude, c.Longitude, c.UpdatedAt, c.UpdatedAt)
}

func (r *Repository) upsert(ctx context.Context, q persistence.Querier, location *domain.BirthLocation) error {
	if err := q.NamedExec(ctx, r.upsertQuery(), location); err != nil {
		r.Log.Error("failed to upsert birth location",
			"error", err,
			"user_id", location.UserID)
		return fmt.Errorf("failed to upsert birth location: %w", err)
	}

	r.Log.Debug("birth location saved",
		"user_id", location.UserID,
		"city", location.BirthCity,
		"accuracy", location.BirthTimeAccuracy)
	return nil
}

// Upsert одна запись на пользователя
func (r *Repository) Upsert(ctx context.Context, location *domain.BirthLocation) error {
	return r.upsert(ctx, r.db, location)
}

func (r *Repository) UpsertTx(ctx context.Context, tx persistence.Transaction, location *domain.BirthLocation) error {
	return r.upsert(ctx, tx, location)
}

// GetByUserID возвращает domain.ErrMissingLocation, если данных нет
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BirthLocation, error) {
	var location domain.BirthLocation
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID)

	if err := r.db.Get(ctx, &location, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("birth location not found", "user_id", userID)
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrMissingLocation)
		}
		r.Log.Error("failed to get birth location",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get birth location: %w", err)
	}

	return &location, nil
}
