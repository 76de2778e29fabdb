package payment_callback

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/service/accounts"
	"github.com/spotbook/appointment-service/internal/service/appointments"
)

// HeaderCallbackToken заголовок с общим секретом платежного провайдера
const HeaderCallbackToken = "X-Callback-Token"

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidToken       = "invalid callback token"
	msgUnknownKind        = "unknown payment kind"
	msgMissingTarget      = "payment target id is required"
	msgAccountNotFound    = "account not found"
	msgApptNotFound       = "appointment not found"
	msgInvalidTransition  = "appointment is not payable"
)

type Handler struct {
	accountService     AccountService
	appointmentService AppointmentService
	token              string
	logger             Logger
}

func NewHandler(accountService AccountService, appointmentService AppointmentService, token string, logger Logger) *Handler {
	return &Handler{
		accountService:     accountService,
		appointmentService: appointmentService,
		token:              token,
		logger:             logger,
	}
}

// Handle POST /api/v1/payments/callback
// Аутентификация - общий секрет в заголовке; повторная доставка
// колбэка безопасна (обе операции идемпотентны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(HeaderCallbackToken)
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
		h.logger.Warn("POST /payments/callback - Invalid callback token")
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return
	}

	var req PaymentCallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/callback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Kind {
	case KindRegistration:
		h.handleRegistration(w, r, req.AccountID)
	case KindAppointment:
		h.handleAppointment(w, r, req.AppointmentID)
	default:
		h.logger.Warn("POST /payments/callback - Unknown payment kind: %q", req.Kind)
		handlers.RespondBadRequest(w, msgUnknownKind)
	}
}

func (h *Handler) handleRegistration(w http.ResponseWriter, r *http.Request, accountID string) {
	if accountID == "" {
		handlers.RespondBadRequest(w, msgMissingTarget)
		return
	}

	if err := h.accountService.MarkPaid(r.Context(), accountID); err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccountNotFound):
			h.logger.Warn("POST /payments/callback - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		default:
			h.logger.Error("POST /payments/callback - Failed to mark account paid: account_id=%s, error=%v",
				accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Registration fee recorded: account_id=%s", accountID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleAppointment(w http.ResponseWriter, r *http.Request, appointmentID string) {
	if appointmentID == "" {
		handlers.RespondBadRequest(w, msgMissingTarget)
		return
	}

	if err := h.appointmentService.CompleteFromPayment(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /payments/callback - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgApptNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("POST /payments/callback - Appointment not payable: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /payments/callback - Failed to complete appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Appointment payment recorded: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
