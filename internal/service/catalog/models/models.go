package models

import (
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	AccountID       string  // инициатор (должен быть админом)
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	BasePrice       float64 `json:"basePrice"`
	PricePerKm      float64 `json:"pricePerKm"`
	DurationMinutes int     `json:"duration"`
	Image           string  `json:"image"`
}

// UpdateServiceRequest запрос на частичное обновление услуги
// nil поля не меняются
type UpdateServiceRequest struct {
	AccountID       string
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	BasePrice       *float64 `json:"basePrice,omitempty"`
	PricePerKm      *float64 `json:"pricePerKm,omitempty"`
	DurationMinutes *int     `json:"duration,omitempty"`
	Image           *string  `json:"image,omitempty"`
}

// ToDomainPatch конвертирует request в domain патч
func (r *UpdateServiceRequest) ToDomainPatch() domain.ServicePatch {
	return domain.ServicePatch{
		Name:            r.Name,
		Description:     r.Description,
		BasePrice:       r.BasePrice,
		PricePerKm:      r.PricePerKm,
		DurationMinutes: r.DurationMinutes,
		Image:           r.Image,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	BasePrice       float64   `json:"basePrice"`
	PricePerKm      float64   `json:"pricePerKm"`
	DurationMinutes int       `json:"duration"`
	Image           string    `json:"image"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		PricePerKm:      s.PricePerKm,
		DurationMinutes: s.DurationMinutes,
		Image:           s.Image,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, svc := range services {
		if svcResp := FromDomainService(svc); svcResp != nil {
			resp.Services = append(resp.Services, *svcResp)
		}
	}

	return resp
}
