package list_appointments

import (
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/appointments"
	"github.com/spotbook/appointment-service/internal/service/appointments/models"
)

const (
	msgAccountNotFound  = "account not found"
	msgMissingAccountID = "missing account id"
	msgForbidden        = "access denied"
	msgInvalidFilter    = "invalid filter parameters"
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

// Handle GET /api/v1/admin/appointments?status=&date=&serviceId=
// Фильтры комбинируются по AND, "all" или пустое значение не ограничивает выборку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/appointments - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	query := r.URL.Query()
	req := &models.ListAppointmentsRequest{
		AccountID: accountID,
		Status:    query.Get("status"),
		Date:      query.Get("date"),
		ServiceID: query.Get("serviceId"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccountNotFound):
			h.logger.Warn("GET /admin/appointments - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /admin/appointments - Access denied: account_id=%s", accountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: account_id=%s, error=%v",
				accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Retrieved %d appointments: account_id=%s",
		len(result.Appointments), accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
