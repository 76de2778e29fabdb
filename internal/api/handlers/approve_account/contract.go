package approve_account

import (
	"context"

	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

type AccountService interface {
	SetApproval(ctx context.Context, id string, req *models.SetApprovalRequest) (*models.AccountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
