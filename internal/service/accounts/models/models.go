package models

import (
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
)

// RegisterAccountRequest данные регистрации нового аккаунта
type RegisterAccountRequest struct {
	Name  string
	Email string
	Role  string
}

// SetApprovalRequest запрос на изменение статуса одобрения аккаунта
type SetApprovalRequest struct {
	AdminID    string
	IsApproved bool
}

// AccountResponse DTO аккаунта для ответов API
type AccountResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"isApproved"`
	HasPaid    bool      `json:"hasPaid"`
	CanBook    bool      `json:"canBook"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AccountListResponse список аккаунтов
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// FromDomainAccount конвертирует доменный аккаунт в DTO
func FromDomainAccount(acc *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         acc.ID,
		Name:       acc.Name,
		Email:      acc.Email,
		Role:       string(acc.Role),
		IsApproved: acc.IsApproved,
		HasPaid:    acc.HasPaid,
		CanBook:    acc.CanBook(),
		CreatedAt:  acc.CreatedAt,
	}
}
