package payment_callback

import "context"

// AccountService отмечает оплату регистрационного взноса
type AccountService interface {
	MarkPaid(ctx context.Context, id string) error
}

// AppointmentService завершает одобренную запись после оплаты
type AppointmentService interface {
	CompleteFromPayment(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
