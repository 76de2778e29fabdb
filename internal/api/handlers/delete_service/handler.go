package delete_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/catalog"
)

const (
	msgNotFound         = "service not found"
	msgAccountNotFound  = "account not found"
	msgMissingAccountID = "missing account id"
	msgForbidden        = "access denied"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/services/{serviceId}
// Существующие записи на удаленную услугу сохраняются; название услуги
// в них деградирует до "Unknown Service"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]

	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/services/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID, accountID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /admin/services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccountNotFound):
			h.logger.Warn("DELETE /admin/services/{id} - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/services/{id} - Access denied: account_id=%s", accountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /admin/services/{id} - Failed to delete service: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted successfully: service_id=%s, account_id=%s",
		serviceID, accountID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
