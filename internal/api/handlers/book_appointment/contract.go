package book_appointment

import (
	"context"

	bookAppointment "github.com/spotbook/appointment-service/internal/usecase/book_appointment"
)

type BookAppointmentUseCase interface {
	Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
}

// AppointmentMetrics счетчики доменных событий
type AppointmentMetrics interface {
	IncAppointmentCreated(serviceID string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
