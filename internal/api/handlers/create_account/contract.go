package create_account

import (
	"context"

	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

type AccountService interface {
	Register(ctx context.Context, req *models.RegisterAccountRequest) (*models.AccountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
