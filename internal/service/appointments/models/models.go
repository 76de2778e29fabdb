package models

import (
	"errors"
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)

// filterAll специальное значение фильтра, совпадающее со всем
const filterAll = "all"

// Request модели

// ListAppointmentsRequest запрос на получение записей с фильтрацией
// Пустые значения и "all" не ограничивают выборку
type ListAppointmentsRequest struct {
	AccountID string // инициатор (должен быть админом)
	Status    string `json:"status,omitempty"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD
	ServiceID string `json:"serviceId,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	var filter domain.AppointmentFilter

	if r.Status != "" && r.Status != filterAll {
		status := domain.AppointmentStatus(r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.Date = &date
	}

	if r.ServiceID != "" && r.ServiceID != filterAll {
		serviceID := r.ServiceID
		filter.ServiceID = &serviceID
	}

	return filter, nil
}

// UpdateStatusRequest запрос на перевод записи в новый статус
type UpdateStatusRequest struct {
	AccountID string `json:"accountId"`
	Status    string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            string  `json:"id"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"` // "Unknown Service" для удаленной услуги
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Date          string  `json:"date"` // "2025-05-20"
	TimeSlot      string  `json:"timeSlot"`
	Status        string  `json:"status"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceKm    float64 `json:"distance"`
	Price         float64 `json:"price"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, serviceName string) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:            a.ID,
		ServiceID:     a.ServiceID,
		ServiceName:   serviceName,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		CustomerPhone: a.CustomerPhone,
		Date:          a.Date.Format(domain.DateFormat),
		TimeSlot:      a.TimeSlot,
		Status:        string(a.Status),
		Address:       a.Location.Address,
		Latitude:      a.Location.Latitude,
		Longitude:     a.Location.Longitude,
		DistanceKm:    a.DistanceKm,
		Price:         a.Price,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
