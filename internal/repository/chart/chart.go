package chartRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/persistence"
	ports "github.com/admin/astro-core/internal/ports/repository"
	"github.com/google/uuid"
)

type chartColumns struct {
	TableName    string
	UserID       string
	SunSign      string
	MoonSign     string
	RisingSign   string
	HouseSystem  string
	Chart        string
	Version      string
	CalculatedAt string
	UpdatedAt    string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns chartColumns
}

// New репозиторий натальных карт. Карта целиком лежит в JSONB, знаки продублированы колонками для выборок
func New(db persistence.Persistence, log *slog.Logger) ports.IChartRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: chartColumns{
			TableName:    "birth_charts",
			UserID:       "user_id",
			SunSign:      "sun_sign",
			MoonSign:     "moon_sign",
			RisingSign:   "rising_sign",
			HouseSystem:  "house_system",
			Chart:        "chart",
			Version:      "version",
			CalculatedAt: "calculated_at",
			UpdatedAt:    "updated_at",
		},
	}
}

func (r *Repository) upsertQuery() string {
	c := r.columns
	return fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()`,
		c.TableName,
		c.UserID, c.SunSign, c.MoonSign, c.RisingSign, c.HouseSystem, c.Chart, c.Version, c.CalculatedAt, c.UpdatedAt,
		c.UserID,
		c.SunSign, c.SunSign, c.MoonSign, c.MoonSign, c.RisingSign, c.RisingSign, c.HouseSystem, c.HouseSystem,
		c.Chart, c.Chart, c.Version, c.Version, c.CalculatedAt, c.CalculatedAt, c.UpdatedAt)
}

func (r *Repository) upsert(ctx context.Context, q persistence.Querier, chart *domain.BirthChart) error {
	payload, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("failed to marshal chart: %w", err)
	}

	var rising, houseSystem sql.NullString
	if chart.RisingSign != nil {
		rising = sql.NullString{String: string(*chart.RisingSign), Valid: true}
	}
	if chart.HouseSystem != "" {
		houseSystem = sql.NullString{String: chart.HouseSystem, Valid: true}
	}

	err = q.Exec(ctx, r.upsertQuery(),
		chart.UserID,
		string(chart.SunSign),
		string(chart.MoonSign),
		rising,
		houseSystem,
		payload,
		chart.Version,
		chart.CalculatedAt,
	)
	if err != nil {
		r.Log.Error("failed to upsert birth chart",
			"error", err,
			"user_id", chart.UserID)
		return fmt.Errorf("failed to upsert birth chart: %w", err)
	}

	r.Log.Debug("birth chart saved",
		"user_id", chart.UserID,
		"sun_sign", chart.SunSign,
		"payload_size", len(payload))
	return nil
}

// Upsert сохраняет карту пользователя, перезаписывая предыдущую
func (r *Repository) Upsert(ctx context.Context, chart *domain.BirthChart) error {
	return r.upsert(ctx, r.db, chart)
}

// UpsertTx то же в транзакции
func (r *Repository) UpsertTx(ctx context.Context, tx persistence.Transaction, chart *domain.BirthChart) error {
	return r.upsert(ctx, tx, chart)
}

// GetByUserID возвращает domain.ErrChartNotFound, если карты нет
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error) {
	var payload []byte
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.columns.Chart,
		r.columns.TableName,
		r.columns.UserID)

	if err := r.db.Get(ctx, &payload, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("birth chart not found", "user_id", userID)
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrChartNotFound)
		}
		r.Log.Error("failed to get birth chart",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get birth chart: %w", err)
	}

	var chart domain.BirthChart
	if err := json.Unmarshal(payload, &chart); err != nil {
		r.Log.Error("failed to decode birth chart",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to decode birth chart: %w", err)
	}

	return &chart, nil
}

// Delete удаляет карту, отсутствие карты не ошибка
func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.columns.TableName, r.columns.UserID)
	rows, err := r.db.ExecWithResult(ctx, query, userID)
	if err != nil {
		r.Log.Error("failed to delete birth chart", "error", err, "user_id", userID)
		return fmt.Errorf("failed to delete birth chart: %w", err)
	}
	r.Log.Debug("birth chart deleted", "user_id", userID, "rows", rows)
	return nil
}

// BeginTx начинает новую транзакцию
func (r *Repository) BeginTx(ctx context.Context) (persistence.Transaction, error) {
	return r.db.BeginTx(ctx)
}

// WithTransaction выполняет функцию в транзакции с автоматическим commit/rollback
func (r *Repository) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	return r.db.WithTransaction(ctx, fn)
}
