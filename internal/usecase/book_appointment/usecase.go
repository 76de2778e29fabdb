package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spotbook/appointment-service/internal/domain"
	"github.com/spotbook/appointment-service/internal/geo"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	serviceRepo "github.com/spotbook/appointment-service/internal/infra/storage/service"
	"github.com/spotbook/appointment-service/internal/pricing"
)

// UseCase use case для создания записи на услугу
// Заявка принимается только от одобренного и оплатившего взнос аккаунта;
// стоимость фиксируется на момент создания и дальше не пересчитывается
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	accountRepo     AccountRepository
	geocoder        Geocoder
	events          EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	origin          domain.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	accountRepo AccountRepository,
	geocoder Geocoder,
	events EventPublisher,
	txManager TransactionManager,
	origin domain.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		accountRepo:     accountRepo,
		geocoder:        geocoder,
		events:          events,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		origin:          origin,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Никакая запись не сохраняется, если любой из шагов завершился ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: account=%s, service=%s, date=%s, slot=%q",
		req.AccountID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}
	if err := validateTimeSlot(req.TimeSlot); err != nil {
		uc.logger.Warn("BookAppointment: time slot validation failed: %v", err)
		return nil, err
	}
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("BookAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем допуск аккаунта к бронированию
	if err := uc.checkBookingAccess(ctx, req.AccountID); err != nil {
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("BookAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Геокодируем адрес клиента
	location, err := uc.geocoder.Resolve(ctx, req.Address)
	if err != nil {
		uc.logger.Warn("BookAppointment: failed to geocode address %q: %v", req.Address, err)
		return nil, fmt.Errorf("%w: %v", ErrGeocodingFailed, err)
	}

	// 5. Считаем расстояние и фиксируем стоимость
	distanceKm := geo.DistanceKm(uc.origin, *location)

	price, err := pricing.Calculate(service, distanceKm)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to calculate price: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
	}

	appointment := &domain.Appointment{
		ID:            uuid.New().String(),
		ServiceID:     service.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Status:        domain.StatusPending,
		Location:      *location,
		DistanceKm:    distanceKm,
		Price:         price,
		Notes:         req.Notes,
	}

	// 6. Сохраняем запись
	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		c, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 7. Уведомляем клиента о принятой заявке; сбой отправки
	// не влияет на результат бронирования
	go uc.events.Publish(context.WithoutCancel(ctx), domain.AppointmentEvent{
		Type:        domain.NotificationBooking,
		Appointment: *created,
		ServiceName: service.Name,
	})

	uc.logger.Info("BookAppointment: successfully created appointment id=%s, distance=%.1fkm, price=%.2f",
		created.ID, created.DistanceKm, created.Price)
	return toResponse(created, service.Name), nil
}

// checkBookingAccess проверяет одобрение и оплату регистрационного взноса
// Администраторы обходят обе проверки
func (uc *UseCase) checkBookingAccess(ctx context.Context, accountID string) error {
	acc, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			uc.logger.Warn("BookAppointment: account id=%s not found", accountID)
			return ErrAccountNotFound
		}
		uc.logger.Error("BookAppointment: failed to get account id=%s: %v", accountID, err)
		return fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}

	if acc.IsAdmin() {
		return nil
	}

	if !acc.IsApproved {
		uc.logger.Warn("BookAppointment: account id=%s is not approved", accountID)
		return ErrAccountNotApproved
	}

	if !acc.HasPaid {
		uc.logger.Warn("BookAppointment: account id=%s has not paid the registration fee", accountID)
		return ErrEntitlementRequired
	}

	return nil
}
