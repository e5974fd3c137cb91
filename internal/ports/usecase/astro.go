package usecase

import (
	"context"

	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
)

// IAstroUseCase операции движка, доступные снаружи (HTTP, Kafka)
type IAstroUseCase interface {
	CreateOrUpdateChart(ctx context.Context, in domain.CreateChartInput) (*domain.BirthChart, error)
	RecalculateChart(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error)
	GetBirthChart(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error)
	ChartHistory(ctx context.Context, userID uuid.UUID) ([]string, error)
	GetTransits(ctx context.Context, userID uuid.UUID, date string) ([]domain.TransitSnapshot, error)
	GetSynastry(ctx context.Context, userA, userB uuid.UUID) (*domain.SynastryResult, error)
	GetCurrentPlanetaryPositions(ctx context.Context, date string) (*domain.PlanetaryPositions, error)
	GetLunarData(ctx context.Context, date string) (*domain.LunarPhaseData, error)
	GetLunarCalendar(ctx context.Context, start string, days int) ([]domain.LunarPhaseData, error)
	FindNextPhase(ctx context.Context, name string, from string) (*domain.NextPhase, error)
}
