package my_appointments

import (
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/appointments"
)

const (
	msgAccountNotFound  = "account not found"
	msgMissingAccountID = "missing account id"
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

// Handle GET /api/v1/appointments
// Возвращает записи текущего аккаунта (сопоставление по email)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.ListByAccount(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccountNotFound):
			h.logger.Warn("GET /appointments - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: account_id=%s, error=%v",
				accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Retrieved %d appointments: account_id=%s",
		len(result.Appointments), accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
