package update_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/catalog"
	"github.com/spotbook/appointment-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "service not found"
	msgAccountNotFound    = "account not found"
	msgMissingAccountID   = "missing account id"
	msgForbidden          = "access denied"
	msgEmptyPatch         = "at least one field must be provided"
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

// Handle PATCH /api/v1/admin/services/{serviceId}
// Частичное обновление: поля, отсутствующие в теле, не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]

	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/services/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID

	result, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PATCH /admin/services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccountNotFound):
			h.logger.Warn("PATCH /admin/services/{id} - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/services/{id} - Access denied: account_id=%s", accountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/services/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgEmptyPatch)

		default:
			h.logger.Error("PATCH /admin/services/{id} - Failed to update service: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/services/{id} - Service updated successfully: service_id=%s, account_id=%s",
		serviceID, accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
