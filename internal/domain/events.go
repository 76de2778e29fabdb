package domain

// NotificationType тип email-уведомления, привязан к переходам жизненного цикла
type NotificationType string

const (
	NotificationBooking  NotificationType = "booking"  // заявка создана (pending)
	NotificationApproved NotificationType = "approved" // заявка одобрена, инструкции по оплате
	NotificationDeclined NotificationType = "declined" // заявка отклонена
)

// AppointmentEvent domain event emitted by lifecycle transitions.
// The notification subscriber turns it into an email; the transition itself
// never depends on the outcome.
type AppointmentEvent struct {
	Type        NotificationType
	Appointment Appointment
	ServiceName string // resolved at emit time, degrades to UnknownServiceName
}
