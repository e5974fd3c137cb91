package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalculator struct {
	created      []domain.CreateChartInput
	recalculated []uuid.UUID
	err          error
}

func (f *fakeCalculator) CreateOrUpdateChart(_ context.Context, in domain.CreateChartInput) (*domain.BirthChart, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &domain.BirthChart{UserID: in.UserID, SunSign: domain.SignGemini}, nil
}

func (f *fakeCalculator) RecalculateChart(_ context.Context, userID uuid.UUID) (*domain.BirthChart, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.recalculated = append(f.recalculated, userID)
	return &domain.BirthChart{UserID: userID}, nil
}

func newHandler(calc *fakeCalculator) *ChartRequestHandler {
	return NewChartRequestHandler(calc, slog.New(slog.NewTextHandler(io.Discard, nil))).(*ChartRequestHandler)
}

func actionHeader(action string) []sarama.RecordHeader {
	return []sarama.RecordHeader{{Key: []byte("action"), Value: []byte(action)}}
}

const requestBody = `{"birth_date":"1990-06-15","birth_time":"14:30","birth_timezone":"Europe/Moscow",
"birth_time_accuracy":"exact","birth_city":"Moscow","birth_country":"Russia","latitude":55.75,"longitude":37.61}`

func TestHandleMessage_CalculateUsesKeyAsUserID(t *testing.T) {
	calc := &fakeCalculator{}
	h := newHandler(calc)
	userID := uuid.New()

	require.NoError(t, h.HandleMessage(context.Background(), userID.String(), []byte(requestBody), nil))
	require.Len(t, calc.created, 1)
	assert.Equal(t, userID, calc.created[0].UserID)
	assert.Equal(t, "Moscow", calc.created[0].BirthCity)
	assert.Equal(t, domain.AccuracyExact, calc.created[0].BirthTimeAccuracy)
}

func TestHandleMessage_MalformedBodyIsBusinessError(t *testing.T) {
	h := newHandler(&fakeCalculator{})

	err := h.HandleMessage(context.Background(), uuid.NewString(), []byte("{not json"), actionHeader(ActionCalculate))
	require.Error(t, err)
	assert.True(t, domain.IsBusinessError(err))
}

func TestHandleMessage_ValidationErrorIsBusinessError(t *testing.T) {
	h := newHandler(&fakeCalculator{err: domain.ErrInvalidCoordinates})

	err := h.HandleMessage(context.Background(), uuid.NewString(), []byte(requestBody), nil)
	require.Error(t, err)
	assert.True(t, domain.IsBusinessError(err))
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestHandleMessage_InfrastructureErrorIsRetryable(t *testing.T) {
	h := newHandler(&fakeCalculator{err: errors.New("connection refused")})

	err := h.HandleMessage(context.Background(), uuid.NewString(), []byte(requestBody), nil)
	require.Error(t, err)
	assert.False(t, domain.IsBusinessError(err))
}

func TestHandleMessage_Recalculate(t *testing.T) {
	calc := &fakeCalculator{}
	h := newHandler(calc)
	userID := uuid.New()

	require.NoError(t, h.HandleMessage(context.Background(), userID.String(), nil, actionHeader(ActionRecalculate)))
	assert.Equal(t, []uuid.UUID{userID}, calc.recalculated)

	err := h.HandleMessage(context.Background(), "not-a-uuid", nil, actionHeader(ActionRecalculate))
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
	assert.True(t, domain.IsBusinessError(err))
}

func TestHandleMessage_RecalculateWithoutChart(t *testing.T) {
	calc := &fakeCalculator{err: fmt.Errorf("%w: no birth location", domain.ErrChartNotFound)}
	h := newHandler(calc)

	err := h.HandleMessage(context.Background(), uuid.NewString(), nil, actionHeader(ActionRecalculate))
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
	assert.True(t, domain.IsBusinessError(err))
}

func TestHandleMessage_UnknownAction(t *testing.T) {
	h := newHandler(&fakeCalculator{})

	err := h.HandleMessage(context.Background(), uuid.NewString(), nil, actionHeader("rerank_natal"))
	assert.True(t, domain.IsBusinessError(err))
}
