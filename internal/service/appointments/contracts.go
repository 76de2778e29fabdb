package appointments

import (
	"context"

	"github.com/spotbook/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

// ServiceRepository интерфейс репозитория услуг
// Нужен для подстановки названия услуги в ответы и письма
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// AccountRepository интерфейс репозитория аккаунтов (для проверки прав)
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// EventPublisher интерфейс подписчика на события жизненного цикла
// Реализация обязана не возвращать ошибок наружу: сбой уведомления
// не откатывает переход
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
