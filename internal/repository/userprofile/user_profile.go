package userProfileRepo

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

type profileColumns struct {
	TableName  string
	UserID     string
	ZodiacSign string
	Birthdate  string
	UpdatedAt  string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns profileColumns
}

func New(db persistence.Persistence, log *slog.Logger) ports.IUserProfileRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: profileColumns{
			TableName:  "user_profiles",
			UserID:     "user_id",
			ZodiacSign: "zodiac_sign",
			Birthdate:  "birthdate",
			UpdatedAt:  "updated_at",
		},
	}
}

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	c := r.columns
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		c.UserID, c.ZodiacSign, c.Birthdate, c.UpdatedAt, c.TableName, c.UserID)

	if err := r.db.Get(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user profile not found", "user_id", userID)
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrUserNotFound)
		}
		r.Log.Error("failed to get user profile", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &profile, nil
}

func (r *Repository) updateZodiacQuery() string {
	c := r.columns
	return fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()`,
		c.TableName, c.UserID, c.ZodiacSign, c.Birthdate, c.UpdatedAt,
		c.UserID, c.ZodiacSign, c.ZodiacSign, c.Birthdate, c.Birthdate, c.UpdatedAt)
}

func (r *Repository) updateZodiac(ctx context.Context, q persistence.Querier, userID uuid.UUID, sign domain.Sign, birthdate string) error {
	if err := q.Exec(ctx, r.updateZodiacQuery(), userID, string(sign), birthdate); err != nil {
		r.Log.Error("failed to update user zodiac sign",
			"error", err,
			"user_id", userID,
			"sign", sign)
		return fmt.Errorf("failed to update user zodiac sign: %w", err)
	}
	r.Log.Debug("user zodiac sign updated", "user_id", userID, "sign", sign)
	return nil
}

// UpdateZodiac записывает знак Солнца и дату рождения (создаёт профиль, если его ещё нет)
func (r *Repository) UpdateZodiac(ctx context.Context, userID uuid.UUID, sign domain.Sign, birthdate string) error {
	return r.updateZodiac(ctx, r.db, userID, sign, birthdate)
}

func (r *Repository) UpdateZodiacTx(ctx context.Context, tx persistence.Transaction, userID uuid.UUID, sign domain.Sign, birthdate string) error {
	return r.updateZodiac(ctx, tx, userID, sign, birthdate)
}
