package catalog

import (
	"context"

	"github.com/spotbook/appointment-service/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, id string, patch domain.ServicePatch) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// AccountRepository интерфейс репозитория аккаунтов (для проверки прав)
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
