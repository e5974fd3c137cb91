package repository

import (
	"context"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/persistence"
	"github.com/google/uuid"
)

// IUserProfileRepo профиль пользователя, который ведёт соседний сервис.
// Движок пишет в него только знак Солнца и дату рождения
type IUserProfileRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	UpdateZodiac(ctx context.Context, userID uuid.UUID, sign domain.Sign, birthdate string) error

	UpdateZodiacTx(ctx context.Context, tx persistence.Transaction, userID uuid.UUID, sign domain.Sign, birthdate string) error
}
