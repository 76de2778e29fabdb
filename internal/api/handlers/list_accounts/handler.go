package list_accounts

import (
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	"github.com/spotbook/appointment-service/internal/service/accounts"
)

const (
	msgAccountNotFound  = "account not found"
	msgMissingAccountID = "missing account id"
	msgForbidden        = "access denied"
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

// Handle GET /api/v1/admin/accounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/accounts - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.List(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccountNotFound):
			h.logger.Warn("GET /admin/accounts - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, accounts.ErrAccessDenied):
			h.logger.Warn("GET /admin/accounts - Access denied: account_id=%s", accountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/accounts - Failed to list accounts: account_id=%s, error=%v",
				accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/accounts - Retrieved %d accounts: account_id=%s",
		len(result.Accounts), accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
