package book_appointment

import (
	"context"
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// AccountRepository интерфейс репозитория аккаунтов
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// Geocoder резолвит адрес клиента в координаты
// Реализация подменяется через конфигурацию: детерминированный генератор
// или внешний HTTP геокодер
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*domain.Location, error)
}

// EventPublisher интерфейс подписчика на события жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
