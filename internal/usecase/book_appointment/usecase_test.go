package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	serviceRepo "github.com/spotbook/appointment-service/internal/infra/storage/service"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	created []*domain.Appointment
	err     error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = append(f.created, appt)
	return appt, nil
}

type fakeServiceRepo struct {
	services map[string]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	acc, ok := f.accounts[id]
	if !ok {
		return nil, accountRepo.ErrAccountNotFound
	}
	return acc, nil
}

type fakeGeocoder struct {
	location *domain.Location
	err      error
}

func (f *fakeGeocoder) Resolve(_ context.Context, address string) (*domain.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	loc := *f.location
	loc.Address = address
	return &loc, nil
}

type fakePublisher struct {
	events chan domain.AppointmentEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan domain.AppointmentEvent, 8)}
}

func (f *fakePublisher) Publish(_ context.Context, event domain.AppointmentEvent) {
	f.events <- event
}

func (f *fakePublisher) wait(t *testing.T) domain.AppointmentEvent {
	t.Helper()
	select {
	case event := <-f.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return domain.AppointmentEvent{}
	}
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение теста

type env struct {
	uc        *UseCase
	apptRepo  *fakeAppointmentRepo
	publisher *fakePublisher
	geocoder  *fakeGeocoder
}

func newEnv() *env {
	apptRepo := &fakeAppointmentRepo{}
	publisher := newFakePublisher()
	geocoder := &fakeGeocoder{
		location: &domain.Location{Latitude: 40.7282, Longitude: -73.9942},
	}

	services := &fakeServiceRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Name: "Home Cleaning", BasePrice: 50, PricePerKm: 2},
	}}
	accounts := &fakeAccountRepo{accounts: map[string]*domain.Account{
		"acc-ok":         {ID: "acc-ok", Email: "john@example.com", Role: domain.RoleUser, IsApproved: true, HasPaid: true},
		"acc-unapproved": {ID: "acc-unapproved", Role: domain.RoleUser},
		"acc-unpaid":     {ID: "acc-unpaid", Role: domain.RoleUser, IsApproved: true},
		"acc-admin":      {ID: "acc-admin", Role: domain.RoleAdmin},
	}}

	origin := domain.Location{Latitude: 40.7128, Longitude: -74.0060}

	uc := NewUseCase(apptRepo, services, accounts, geocoder, publisher, fakeTxManager{}, origin, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	return &env{uc: uc, apptRepo: apptRepo, publisher: publisher, geocoder: geocoder}
}

func validRequest() *Request {
	return &Request{
		AccountID:     "acc-ok",
		ServiceID:     "svc-1",
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "123-456-7890",
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "9:00 AM - 11:00 AM",
		Address:       "456 Customer Ave, City, Country",
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Home Cleaning", resp.ServiceName)
	assert.Equal(t, "456 Customer Ave, City, Country", resp.Address)

	// Цена = базовая + расстояние * тариф, зафиксирована при создании
	assert.InDelta(t, 50+resp.DistanceKm*2, resp.Price, 1e-9)

	require.Len(t, e.apptRepo.created, 1)

	event := e.publisher.wait(t)
	assert.Equal(t, domain.NotificationBooking, event.Type)
	assert.Equal(t, resp.ID, event.Appointment.ID)
	assert.Equal(t, "Home Cleaning", event.ServiceName)
}

func TestExecute_AdminBypassesGates(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.AccountID = "acc-admin"

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, e.apptRepo.created, 1)
}

func TestExecute_UnknownService(t *testing.T) {
	e := newEnv()
	req := validRequest()
	req.ServiceID = "missing"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// Никакая запись не создается при отказе
	assert.Empty(t, e.apptRepo.created)
}

func TestExecute_GeocodingFailure(t *testing.T) {
	e := newEnv()
	e.geocoder.err = errors.New("provider unavailable")

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGeocodingFailed)
	assert.Empty(t, e.apptRepo.created)
}

func TestExecute_AccountGating(t *testing.T) {
	cases := []struct {
		name      string
		accountID string
		expected  error
	}{
		{"unknown account", "missing", ErrAccountNotFound},
		{"not approved", "acc-unapproved", ErrAccountNotApproved},
		{"approved but unpaid", "acc-unpaid", ErrEntitlementRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			req := validRequest()
			req.AccountID = tc.accountID

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.expected)
			assert.Empty(t, e.apptRepo.created)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	t.Run("time slot outside the fixed set", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.TimeSlot = "10:00 AM"

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("date in the past", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("today is allowed", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		_, err := e.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("short name", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.CustomerName = "J"

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed email", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.CustomerEmail = "not-an-email"

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("short address", func(t *testing.T) {
		e := newEnv()
		req := validRequest()
		req.Address = "abc"

		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
