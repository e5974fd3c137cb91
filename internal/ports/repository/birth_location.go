package repository

import (
	"context"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/persistence"
	"github.com/google/uuid"
)

// IBirthLocationRepo данные рождения пользователя
type IBirthLocationRepo interface {
	Upsert(ctx context.Context, location *domain.BirthLocation) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BirthLocation, error)

	UpsertTx(ctx context.Context, tx persistence.Transaction, location *domain.BirthLocation) error
}
