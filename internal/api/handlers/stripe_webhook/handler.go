package stripe_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/service/accounts"
	"github.com/spotbook/appointment-service/internal/service/appointments"
)

// Ключи metadata в Stripe Checkout Session
const (
	metadataKind          = "kind"
	metadataAccountID     = "account_id"
	metadataAppointmentID = "appointment_id"

	kindRegistration = "registration"
	kindAppointment  = "appointment"
)

// maxBodyBytes жесткий лимит на тело вебхука
const maxBodyBytes = 1 << 20

type Handler struct {
	accountService     AccountService
	appointmentService AppointmentService
	secret             string
	tolerance          time.Duration
	logger             Logger
}

func NewHandler(
	accountService AccountService,
	appointmentService AppointmentService,
	secret string,
	tolerance time.Duration,
	logger Logger,
) *Handler {
	return &Handler{
		accountService:     accountService,
		appointmentService: appointmentService,
		secret:             secret,
		tolerance:          tolerance,
		logger:             logger,
	}
}

// Handle POST /api/v1/payments/stripe/webhook
// Аутентификация - подпись Stripe-Signature; повторная доставка события
// безопасна, обе целевые операции идемпотентны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(h.secret) == "" {
		h.logger.Warn("POST /payments/stripe/webhook - Webhook secret is not configured")
		handlers.RespondError(w, http.StatusServiceUnavailable, "stripe webhook is not configured")
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		h.logger.Warn("POST /payments/stripe/webhook - Missing Stripe-Signature header")
		handlers.RespondBadRequest(w, "missing Stripe-Signature header")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Failed to read request body: %v", err)
		handlers.RespondBadRequest(w, "failed to read request body")
		return
	}

	event, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.secret, h.tolerance)
	if err != nil {
		h.logger.Warn("POST /payments/stripe/webhook - Invalid signature: %v", err)
		handlers.RespondBadRequest(w, "invalid signature")
		return
	}

	eventType := string(event.Type)
	h.logger.Info("POST /payments/stripe/webhook - Event received: event_id=%s, type=%s", event.ID, eventType)

	if eventType != "checkout.session.completed" {
		// Остальные события не интересны, подтверждаем получение
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		h.logger.Error("POST /payments/stripe/webhook - Invalid checkout session payload: %v", err)
		handlers.RespondBadRequest(w, "invalid checkout session payload")
		return
	}

	kind := strings.TrimSpace(session.Metadata[metadataKind])
	switch kind {
	case kindRegistration:
		h.completeRegistration(w, r, strings.TrimSpace(session.Metadata[metadataAccountID]))
	case kindAppointment:
		h.completeAppointment(w, r, strings.TrimSpace(session.Metadata[metadataAppointmentID]))
	default:
		h.logger.Warn("POST /payments/stripe/webhook - Missing or unknown kind metadata: %q", kind)
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
	}
}

func (h *Handler) completeRegistration(w http.ResponseWriter, r *http.Request, accountID string) {
	if accountID == "" {
		h.logger.Warn("POST /payments/stripe/webhook - Missing account_id metadata")
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.accountService.MarkPaid(r.Context(), accountID); err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			h.logger.Warn("POST /payments/stripe/webhook - Account not found: account_id=%s", accountID)
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}
		h.logger.Error("POST /payments/stripe/webhook - Failed to mark account paid: account_id=%s, error=%v",
			accountID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /payments/stripe/webhook - Registration fee recorded: account_id=%s", accountID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) completeAppointment(w http.ResponseWriter, r *http.Request, appointmentID string) {
	if appointmentID == "" {
		h.logger.Warn("POST /payments/stripe/webhook - Missing appointment_id metadata")
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.appointmentService.CompleteFromPayment(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /payments/stripe/webhook - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("POST /payments/stripe/webhook - Appointment not payable: appointment_id=%s", appointmentID)
			handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})

		default:
			h.logger.Error("POST /payments/stripe/webhook - Failed to complete appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/stripe/webhook - Appointment payment recorded: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
