package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/spotbook/appointment-service/internal/domain"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	appointmentRepo "github.com/spotbook/appointment-service/internal/infra/storage/appointment"
	"github.com/spotbook/appointment-service/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей
// Владеет правилами переходов статусов; создание записи живет
// в usecase book_appointment
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	accountRepo     AccountRepository
	events          EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	accountRepo AccountRepository,
	events EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		accountRepo:     accountRepo,
		events:          events,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Пользователь видит только свои записи (по email), админ - любые
func (s *Service) GetByID(ctx context.Context, id string, accountID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for account=%s", id, accountID)

	acc, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !acc.IsAdmin() && appt.CustomerEmail != acc.Email {
		s.logger.Warn("GetByID: access denied for account=%s to appointment id=%s", accountID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt, s.resolveServiceName(ctx, appt.ServiceID)), nil
}

// List получает записи с фильтрацией по статусу, дате и услуге
// Фильтры применяются по AND, "all"/пустое значение совпадает со всем,
// порядок записей сохраняется
// Доступно только администраторам
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for account=%s, status=%q, date=%q, service=%q",
		req.AccountID, req.Status, req.Date, req.ServiceID)

	if err := s.checkAdminAccess(ctx, req.AccountID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return s.toListResponse(ctx, appointments), nil
}

// ListByAccount получает записи клиента (сопоставление по email аккаунта)
func (s *Service) ListByAccount(ctx context.Context, accountID string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByAccount: fetching appointments for account=%s", accountID)

	acc, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	filter := domain.AppointmentFilter{CustomerEmail: &acc.Email}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByAccount: repository error for account=%s: %v", accountID, err)
		return nil, fmt.Errorf("%w: ListByAccount - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByAccount: successfully fetched %d appointments for account=%s",
		len(appointments), accountID)
	return s.toListResponse(ctx, appointments), nil
}

// UpdateStatus переводит запись в новый статус (решение администратора)
// Допустимы только переходы pending -> approved | declined
// Переход обновляет только status и updated_at; цена, дистанция, адрес
// и услуга не мутируются
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by account=%s",
		id, req.Status, req.AccountID)

	if err := s.checkAdminAccess(ctx, req.AccountID); err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	appt, err := s.transition(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	serviceName := s.resolveServiceName(ctx, appt.ServiceID)

	// Одобрение и отклонение уведомляют клиента; сбой уведомления
	// не влияет на результат перехода
	switch newStatus {
	case domain.StatusApproved:
		go s.events.Publish(context.WithoutCancel(ctx), domain.AppointmentEvent{
			Type:        domain.NotificationApproved,
			Appointment: *appt,
			ServiceName: serviceName,
		})
	case domain.StatusDeclined:
		go s.events.Publish(context.WithoutCancel(ctx), domain.AppointmentEvent{
			Type:        domain.NotificationDeclined,
			Appointment: *appt,
			ServiceName: serviceName,
		})
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, newStatus)
	return models.FromDomainAppointment(appt, serviceName), nil
}

// CompleteFromPayment завершает одобренную запись после успешной оплаты
// Идемпотентна для повторов платежного колбэка: уже завершенная запись - no-op
func (s *Service) CompleteFromPayment(ctx context.Context, id string) error {
	s.logger.Info("CompleteFromPayment: completing appointment id=%s", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CompleteFromPayment: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("CompleteFromPayment: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: CompleteFromPayment - repository error: %v", ErrInternal, err)
	}

	if appt.Status == domain.StatusCompleted {
		s.logger.Info("CompleteFromPayment: appointment id=%s already completed, ignoring replay", id)
		return nil
	}

	if _, err := s.transition(ctx, id, domain.StatusCompleted); err != nil {
		return err
	}

	s.logger.Info("CompleteFromPayment: successfully completed appointment id=%s", id)
	return nil
}

// transition применяет переход статуса с проверкой таблицы переходов
// Возвращает запись с обновленным статусом
func (s *Service) transition(ctx context.Context, id string, newStatus domain.AppointmentStatus) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("transition: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("transition: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	if !appt.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("transition: invalid transition %s -> %s for appointment id=%s",
			appt.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("transition: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись, чтобы вернуть актуальный updated_at
	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("transition: failed to reload appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: transition - failed to reload appointment: %v", ErrInternal, err)
	}

	return updated, nil
}

// toListResponse конвертирует записи в список DTO с подстановкой названий услуг
// Названия кэшируются в рамках запроса, удаленные услуги дают "Unknown Service"
func (s *Service) toListResponse(ctx context.Context, appointments []*domain.Appointment) *models.AppointmentListResponse {
	names := make(map[string]string)

	resp := &models.AppointmentListResponse{
		Appointments: make([]models.AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		name, ok := names[appt.ServiceID]
		if !ok {
			name = s.resolveServiceName(ctx, appt.ServiceID)
			names[appt.ServiceID] = name
		}
		resp.Appointments = append(resp.Appointments, *models.FromDomainAppointment(appt, name))
	}

	return resp
}

// resolveServiceName возвращает название услуги для записи
// Lookup удаленной услуги деградирует до "Unknown Service", никогда не падает
func (s *Service) resolveServiceName(ctx context.Context, serviceID string) string {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return domain.UnknownServiceName
	}
	return svc.Name
}

func (s *Service) getAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			s.logger.Warn("getAccount: account id=%s not found", accountID)
			return nil, ErrAccountNotFound
		}
		s.logger.Error("getAccount: failed to get account id=%s: %v", accountID, err)
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
