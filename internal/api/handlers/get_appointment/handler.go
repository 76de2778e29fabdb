package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/appointments"
)

const (
	msgNotFound         = "appointment not found"
	msgAccountNotFound  = "account not found"
	msgMissingAccountID = "missing account id"
	msgForbidden        = "access denied"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	// Получаем запись (сервис сам проверит права доступа)
	appointment, err := h.service.GetByID(r.Context(), appointmentID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccountNotFound):
			h.logger.Warn("GET /appointments/{id} - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/{id} - Access denied: appointment_id=%s, account_id=%s",
				appointmentID, accountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved successfully: appointment_id=%s, account_id=%s",
		appointmentID, accountID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
