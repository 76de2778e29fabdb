package list_accounts

import (
	"context"

	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

type AccountService interface {
	List(ctx context.Context, adminID string) (*models.AccountListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
