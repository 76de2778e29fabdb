package approve_account

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/accounts"
	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "account not found"
	msgMissingAccountID   = "missing account id"
	msgForbidden          = "access denied"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/accounts/{accountId}/approval
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetID := vars["accountId"]

	adminID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/accounts/{id}/approval - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req SetApprovalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/accounts/{id}/approval - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.SetApprovalRequest{
		AdminID:    adminID,
		IsApproved: req.IsApproved,
	}

	result, err := h.service.SetApproval(r.Context(), targetID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccountNotFound):
			h.logger.Warn("PATCH /admin/accounts/{id}/approval - Account not found: account_id=%s", targetID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, accounts.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/accounts/{id}/approval - Access denied: admin_id=%s", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /admin/accounts/{id}/approval - Failed to set approval: account_id=%s, error=%v",
				targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/accounts/{id}/approval - Approval updated: account_id=%s, approved=%t, admin_id=%s",
		targetID, result.IsApproved, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
