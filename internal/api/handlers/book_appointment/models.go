package book_appointment

import (
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
	bookAppointment "github.com/spotbook/appointment-service/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ServiceID     string  `json:"serviceId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Date          string  `json:"date"` // "2026-09-15"
	TimeSlot      string  `json:"timeSlot"`
	Address       string  `json:"address"`
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            string  `json:"id"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"timeSlot"`
	Status        string  `json:"status"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceKm    float64 `json:"distanceKm"`
	Price         float64 `json:"price"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(accountID string) (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		AccountID:     accountID,
		ServiceID:     r.ServiceID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          date,
		TimeSlot:      r.TimeSlot,
		Address:       r.Address,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Date:          resp.Date.Format(domain.DateFormat),
		TimeSlot:      resp.TimeSlot,
		Status:        resp.Status,
		Address:       resp.Address,
		Latitude:      resp.Latitude,
		Longitude:     resp.Longitude,
		DistanceKm:    resp.DistanceKm,
		Price:         resp.Price,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
