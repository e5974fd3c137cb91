package repository

import (
	"context"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/persistence"
	"github.com/google/uuid"
)

// IChartRepo хранилище натальных карт, одна карта на пользователя
type IChartRepo interface {
	Upsert(ctx context.Context, chart *domain.BirthChart) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error)
	Delete(ctx context.Context, userID uuid.UUID) error

	BeginTx(ctx context.Context) (persistence.Transaction, error)
	WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error

	UpsertTx(ctx context.Context, tx persistence.Transaction, chart *domain.BirthChart) error
}
