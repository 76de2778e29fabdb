package notifications

import (
	"context"

	"github.com/spotbook/appointment-service/internal/domain"
)

// Service подписчик на события жизненного цикла записи
// Превращает событие в email и отправляет его fire-and-forget:
// ошибка отправки логируется и проглатывается, переход статуса от неё
// не зависит и не откатывается
type Service struct {
	mailer  Mailer
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса уведомлений
// metrics может быть nil, если метрики выключены
func NewService(mailer Mailer, metrics Metrics, logger Logger) *Service {
	return &Service{
		mailer:  mailer,
		metrics: metrics,
		logger:  logger,
	}
}

// Publish обрабатывает событие жизненного цикла
// Никогда не возвращает ошибку вызывающему: сбой уведомления не должен
// ломать создание или перевод записи
func (s *Service) Publish(_ context.Context, event domain.AppointmentEvent) {
	to := event.Appointment.CustomerEmail
	if to == "" {
		s.logger.Warn("Publish: appointment id=%s has no customer email, skipping %s notification",
			event.Appointment.ID, event.Type)
		return
	}

	subject, body := renderEmail(event)

	if err := s.mailer.Send(to, subject, body); err != nil {
		s.logger.Error("Publish: failed to send %s email for appointment id=%s to=%s: %v",
			event.Type, event.Appointment.ID, to, err)
		if s.metrics != nil {
			s.metrics.IncNotificationFailed(string(event.Type))
		}
		return
	}

	s.logger.Info("Publish: %s email sent for appointment id=%s to=%s",
		event.Type, event.Appointment.ID, to)
	if s.metrics != nil {
		s.metrics.IncNotificationSent(string(event.Type))
	}
}
