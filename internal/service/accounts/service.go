package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/spotbook/appointment-service/internal/domain"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

// Service сервис аккаунтов: регистрация, одобрение и разовый
// регистрационный платеж
type Service struct {
	accountRepo AccountRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса аккаунтов
func NewService(accountRepo AccountRepository, logger Logger) *Service {
	return &Service{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Register регистрирует новый аккаунт
// Новый аккаунт всегда user, не одобрен и не оплачен; админские аккаунты
// заводятся сидом миграций
func (s *Service) Register(ctx context.Context, req *models.RegisterAccountRequest) (*models.AccountResponse, error) {
	s.logger.Info("Register: registering account email=%s", req.Email)

	if err := validateRegistration(req); err != nil {
		s.logger.Warn("Register: validation failed for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	account := &domain.Account{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Role:       domain.RoleUser,
		IsApproved: false,
		HasPaid:    false,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, accountRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered account id=%s", created.ID)
	return models.FromDomainAccount(created), nil
}

// GetByID получает аккаунт по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AccountResponse, error) {
	acc, err := s.getAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAccount(acc), nil
}

// List получает все аккаунты
// Доступно только администраторам
func (s *Service) List(ctx context.Context, adminID string) (*models.AccountListResponse, error) {
	s.logger.Info("List: fetching accounts for admin=%s", adminID)

	if err := s.checkAdminAccess(ctx, adminID); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.AccountListResponse{
		Accounts: make([]models.AccountResponse, 0, len(accounts)),
	}
	for _, acc := range accounts {
		resp.Accounts = append(resp.Accounts, *models.FromDomainAccount(acc))
	}

	s.logger.Info("List: successfully fetched %d accounts", len(accounts))
	return resp, nil
}

// SetApproval одобряет или отзывает одобрение аккаунта
// Доступно только администраторам
func (s *Service) SetApproval(ctx context.Context, id string, req *models.SetApprovalRequest) (*models.AccountResponse, error) {
	s.logger.Info("SetApproval: setting approved=%t for account id=%s by admin=%s",
		req.IsApproved, id, req.AdminID)

	if err := s.checkAdminAccess(ctx, req.AdminID); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SetApproved(ctx, id, req.IsApproved); err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			s.logger.Warn("SetApproval: account id=%s not found", id)
			return nil, ErrAccountNotFound
		}
		s.logger.Error("SetApproval: repository error for account id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetApproval - repository error: %v", ErrInternal, err)
	}

	acc, err := s.getAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetApproval: successfully set approved=%t for account id=%s", req.IsApproved, id)
	return models.FromDomainAccount(acc), nil
}

// MarkPaid отмечает разовый регистрационный платеж аккаунта
// Идемпотентна: повтор платежного колбэка для уже оплаченного
// аккаунта - no-op без побочных эффектов
func (s *Service) MarkPaid(ctx context.Context, id string) error {
	s.logger.Info("MarkPaid: marking account id=%s as paid", id)

	if err := s.accountRepo.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			s.logger.Warn("MarkPaid: account id=%s not found", id)
			return ErrAccountNotFound
		}
		s.logger.Error("MarkPaid: repository error for account id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkPaid: account id=%s marked as paid", id)
	return nil
}

func (s *Service) getAccount(ctx context.Context, id string) (*domain.Account, error) {
	acc, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			s.logger.Warn("getAccount: account id=%s not found", id)
			return nil, ErrAccountNotFound
		}
		s.logger.Error("getAccount: failed to get account id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}
	return acc, nil
}

// checkAdminAccess проверяет, что аккаунт является администратором
func (s *Service) checkAdminAccess(ctx context.Context, accountID string) error {
	acc, err := s.getAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if !acc.IsAdmin() {
		s.logger.Warn("checkAdminAccess: account id=%s is not an admin", accountID)
		return ErrAccessDenied
	}

	return nil
}
