package create_service

import (
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/catalog"
	"github.com/spotbook/appointment-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAccountNotFound    = "account not found"
	msgMissingAccountID   = "missing account id"
	msgForbidden          = "access denied"
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

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/services - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AccountID = accountID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccountNotFound):
			h.logger.Warn("POST /admin/services - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /admin/services - Access denied: account_id=%s", accountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /admin/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/services - Failed to create service: account_id=%s, error=%v",
				accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services - Service created successfully: service_id=%s, account_id=%s",
		result.ID, accountID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
