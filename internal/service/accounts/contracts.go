package accounts

import (
	"context"

	"github.com/spotbook/appointment-service/internal/domain"
)

// AccountRepository интерфейс репозитория аккаунтов
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	MarkPaid(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
