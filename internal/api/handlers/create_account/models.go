package create_account

import "github.com/spotbook/appointment-service/internal/service/accounts/models"

// CreateAccountRequest HTTP request model
type CreateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"` // только "user" или пусто
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAccountRequest) ToServiceRequest() *models.RegisterAccountRequest {
	return &models.RegisterAccountRequest{
		Name:  r.Name,
		Email: r.Email,
		Role:  r.Role,
	}
}
