package delete_service

import "context"

type CatalogService interface {
	Delete(ctx context.Context, id string, accountID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
