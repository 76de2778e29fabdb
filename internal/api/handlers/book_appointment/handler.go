package book_appointment

import (
	"errors"
	"net/http"

	"github.com/spotbook/appointment-service/internal/api/handlers"
	"github.com/spotbook/appointment-service/internal/api/middleware"
	bookAppointment "github.com/spotbook/appointment-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid appointment date, expected YYYY-MM-DD"
	msgAccountNotFound     = "account not found"
	msgAccountNotApproved  = "account has not been approved yet"
	msgEntitlementRequired = "registration fee has not been paid"
	msgServiceNotFound     = "service not found"
	msgGeocodingFailed     = "failed to resolve the provided address"
	msgInvalidTimeSlot     = "time slot is not offered"
	msgInvalidBookingDate  = "invalid appointment date"
)

type Handler struct {
	useCase BookAppointmentUseCase
	metrics AppointmentMetrics
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, metrics AppointmentMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountIDFromContext(r.Context())

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(accountID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrAccountNotFound):
			h.logger.Warn("POST /appointments - Account not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, bookAppointment.ErrAccountNotApproved):
			h.logger.Warn("POST /appointments - Account not approved: account_id=%s", accountID)
			handlers.RespondForbidden(w, msgAccountNotApproved)

		case errors.Is(err, bookAppointment.ErrEntitlementRequired):
			h.logger.Warn("POST /appointments - Registration fee unpaid: account_id=%s", accountID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgEntitlementRequired)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrGeocodingFailed):
			h.logger.Warn("POST /appointments - Geocoding failed: account_id=%s, error=%v", accountID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGeocodingFailed)

		case errors.Is(err, bookAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: %q", req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: account_id=%s, error=%v",
				accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncAppointmentCreated(result.ServiceID)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, account_id=%s",
		result.ID, accountID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
