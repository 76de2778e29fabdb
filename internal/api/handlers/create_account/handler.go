package create_account

import (
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/service/accounts"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmailTaken         = "email is already registered"
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

// Handle POST /api/v1/accounts
// Публичный эндпоинт - регистрация нового аккаунта
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /accounts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrEmailTaken):
			h.logger.Warn("POST /accounts - Email already registered: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgEmailTaken)

		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("POST /accounts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /accounts - Failed to register account: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /accounts - Account registered successfully: account_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
