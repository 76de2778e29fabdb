package payment_callback

// Виды платежей, приходящих с колбэком
const (
	KindRegistration = "registration" // разовый регистрационный взнос аккаунта
	KindAppointment  = "appointment"  // оплата одобренной записи
)

// PaymentCallbackRequest HTTP request model
type PaymentCallbackRequest struct {
	Kind          string `json:"kind"` // registration | appointment
	AccountID     string `json:"accountId,omitempty"`
	AppointmentID string `json:"appointmentId,omitempty"`
}
