package notifications

// Mailer интерфейс почтового клиента
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Metrics интерфейс для учета отправленных уведомлений
type Metrics interface {
	IncNotificationSent(notificationType string)
	IncNotificationFailed(notificationType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
