package accounts

import (
	"errors"
	"strings"

	"github.com/spotbook/appointment-service/internal/domain"
	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

// validateRegistration проверяет данные регистрации
func validateRegistration(req *models.RegisterAccountRequest) error {
	name := strings.TrimSpace(req.Name)
	if len(name) < domain.MinCustomerNameLength {
		return errors.New("name must be at least 2 characters long")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return errors.New("email is invalid")
	}

	// Роль в запросе игнорировать нельзя - явный admin запрещен
	if req.Role != "" && req.Role != string(domain.RoleUser) {
		return errors.New("role must be empty or \"user\"")
	}

	return nil
}
