package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spotbook/appointment-service/internal/domain"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	serviceRepo "github.com/spotbook/appointment-service/internal/infra/storage/service"
	"github.com/spotbook/appointment-service/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo ServiceRepository
	accountRepo AccountRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	accountRepo AccountRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Create создает новую услугу
// Доступно только администраторам
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q by account=%s", req.Name, req.AccountID)

	if err := s.checkAdminAccess(ctx, req.AccountID); err != nil {
		return nil, err
	}

	if err := validateServiceData(req.Name, req.BasePrice, req.PricePerKm, req.DurationMinutes); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	svc := &domain.Service{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		PricePerKm:      req.PricePerKm,
		DurationMinutes: req.DurationMinutes,
		Image:           req.Image,
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id string) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// List получает все услуги каталога
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Update применяет частичный патч к услуге
// Незаполненные поля не меняются; updated_at обновляется
// Доступно только администраторам
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s by account=%s", id, req.AccountID)

	if err := s.checkAdminAccess(ctx, req.AccountID); err != nil {
		return nil, err
	}

	patch := req.ToDomainPatch()
	if patch.IsEmpty() {
		s.logger.Warn("Update: empty patch for service id=%s", id)
		return nil, fmt.Errorf("%w: patch contains no fields", ErrInvalidInput)
	}

	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%s", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу по ID
// Исторические записи не каскадируются: их lookup услуги деградирует
// до "Unknown Service"
// Доступно только администраторам
func (s *Service) Delete(ctx context.Context, id string, accountID string) error {
	s.logger.Info("Delete: deleting service id=%s by account=%s", id, accountID)

	if err := s.checkAdminAccess(ctx, accountID); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%s not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%s", id)
	return nil
}

// ResolveName возвращает название услуги для записи
// Для удаленной услуги возвращает метку "Unknown Service", никогда не падает
func (s *Service) ResolveName(ctx context.Context, id string) string {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return domain.UnknownServiceName
	}
	return svc.Name
}

// checkAdminAccess проверяет, что аккаунт является администратором
func (s *Service) checkAdminAccess(ctx context.Context, accountID string) error {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			s.logger.Warn("checkAdminAccess: account id=%s not found", accountID)
			return ErrAccountNotFound
		}
		s.logger.Error("checkAdminAccess: failed to get account id=%s: %v", accountID, err)
		return fmt.Errorf("%w: checkAdminAccess - failed to get account: %v", ErrInternal, err)
	}

	if !acc.IsAdmin() {
		s.logger.Warn("checkAdminAccess: account id=%s is not an admin", accountID)
		return ErrAccessDenied
	}

	return nil
}

// validateServiceData валидирует данные услуги
func validateServiceData(name string, basePrice, pricePerKm float64, durationMinutes int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if basePrice < 0 {
		return fmt.Errorf("%w: basePrice must be non-negative", ErrInvalidInput)
	}
	if pricePerKm < 0 {
		return fmt.Errorf("%w: pricePerKm must be non-negative", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}

// validatePatch валидирует заполненные поля патча
func validatePatch(patch domain.ServicePatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if patch.BasePrice != nil && *patch.BasePrice < 0 {
		return fmt.Errorf("%w: basePrice must be non-negative", ErrInvalidInput)
	}
	if patch.PricePerKm != nil && *patch.PricePerKm < 0 {
		return fmt.Errorf("%w: pricePerKm must be non-negative", ErrInvalidInput)
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}
