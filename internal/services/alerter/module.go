package alerter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/astro-core/internal/adapters/secondary/alerter"
	"github.com/admin/astro-core/internal/ports/service"
)

// Service реализует IAlerterService. Без клиента алерты только пишутся в лог
type Service struct {
	client *alerter.Client
	log    *slog.Logger
}

// New создаёт новый сервис для отправки алертов
func New(client *alerter.Client, log *slog.Logger) service.IAlerterService {
	return &Service{
		client: client,
		log:    log,
	}
}

// SendAlert отправляет алерт
func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.client == nil {
		s.log.Warn("alerter is disabled, alert dropped", "message", message)
		return nil
	}

	if err := s.client.SendAlert(ctx, message); err != nil {
		return fmt.Errorf("alerter: %w", err)
	}
	return nil
}
