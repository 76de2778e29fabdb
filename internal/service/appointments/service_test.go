package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	appointmentRepo "github.com/spotbook/appointment-service/internal/infra/storage/appointment"
	serviceRepo "github.com/spotbook/appointment-service/internal/infra/storage/service"
	"github.com/spotbook/appointment-service/internal/service/appointments/models"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	listed       []*domain.Appointment
	updates      []string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.listed {
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		if filter.CustomerEmail != nil && appt.CustomerEmail != *filter.CustomerEmail {
			continue
		}
		if filter.ServiceID != nil && appt.ServiceID != *filter.ServiceID {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	f.updates = append(f.updates, id+":"+string(status))
	return nil
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

func (f *fakePublisher) assertSilent(t *testing.T) {
	t.Helper()
	select {
	case event := <-f.events:
		t.Fatalf("unexpected event published: %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение теста

type env struct {
	svc       *Service
	apptRepo  *fakeAppointmentRepo
	publisher *fakePublisher
}

func newEnv() *env {
	apptRepo := &fakeAppointmentRepo{
		appointments: map[string]*domain.Appointment{
			"appt-pending": {
				ID: "appt-pending", ServiceID: "svc-1", Status: domain.StatusPending,
				CustomerEmail: "john@example.com", Price: 60.4, DistanceKm: 5.2,
			},
			"appt-approved": {
				ID: "appt-approved", ServiceID: "svc-1", Status: domain.StatusApproved,
				CustomerEmail: "john@example.com",
			},
			"appt-completed": {
				ID: "appt-completed", ServiceID: "svc-1", Status: domain.StatusCompleted,
				CustomerEmail: "john@example.com",
			},
			"appt-orphan": {
				ID: "appt-orphan", ServiceID: "svc-deleted", Status: domain.StatusPending,
				CustomerEmail: "jane@example.com",
			},
		},
	}
	services := &fakeServiceRepo{services: map[string]*domain.Service{
		"svc-1": {ID: "svc-1", Name: "Home Cleaning", BasePrice: 50, PricePerKm: 2},
	}}
	accounts := &fakeAccountRepo{accounts: map[string]*domain.Account{
		"acc-admin": {ID: "acc-admin", Role: domain.RoleAdmin, Email: "admin@spotbook.local"},
		"acc-john":  {ID: "acc-john", Role: domain.RoleUser, Email: "john@example.com"},
		"acc-jane":  {ID: "acc-jane", Role: domain.RoleUser, Email: "jane@example.com"},
	}}
	publisher := newFakePublisher()

	svc := NewService(apptRepo, services, accounts, publisher, nopLogger{})
	return &env{svc: svc, apptRepo: apptRepo, publisher: publisher}
}

func TestGetByID(t *testing.T) {
	t.Run("owner sees own appointment", func(t *testing.T) {
		e := newEnv()
		resp, err := e.svc.GetByID(context.Background(), "appt-pending", "acc-john")
		require.NoError(t, err)
		assert.Equal(t, "Home Cleaning", resp.ServiceName)
		assert.InDelta(t, 60.4, resp.Price, 1e-9)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.GetByID(context.Background(), "appt-pending", "acc-jane")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees any appointment", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.GetByID(context.Background(), "appt-pending", "acc-admin")
		assert.NoError(t, err)
	})

	t.Run("deleted service degrades to placeholder name", func(t *testing.T) {
		e := newEnv()
		resp, err := e.svc.GetByID(context.Background(), "appt-orphan", "acc-jane")
		require.NoError(t, err)
		assert.Equal(t, domain.UnknownServiceName, resp.ServiceName)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.GetByID(context.Background(), "missing", "acc-john")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestList(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.List(context.Background(), &models.ListAppointmentsRequest{AccountID: "acc-john"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("preserves repository order", func(t *testing.T) {
		e := newEnv()
		e.apptRepo.listed = []*domain.Appointment{
			{ID: "a1", ServiceID: "svc-1", Status: domain.StatusPending},
			{ID: "a2", ServiceID: "svc-1", Status: domain.StatusApproved},
			{ID: "a3", ServiceID: "svc-deleted", Status: domain.StatusPending},
		}

		resp, err := e.svc.List(context.Background(), &models.ListAppointmentsRequest{AccountID: "acc-admin"})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 3)
		assert.Equal(t, "a1", resp.Appointments[0].ID)
		assert.Equal(t, "a2", resp.Appointments[1].ID)
		assert.Equal(t, "a3", resp.Appointments[2].ID)
		assert.Equal(t, domain.UnknownServiceName, resp.Appointments[2].ServiceName)
	})

	t.Run("status filter narrows the result", func(t *testing.T) {
		e := newEnv()
		e.apptRepo.listed = []*domain.Appointment{
			{ID: "a1", ServiceID: "svc-1", Status: domain.StatusPending},
			{ID: "a2", ServiceID: "svc-1", Status: domain.StatusApproved},
		}

		resp, err := e.svc.List(context.Background(), &models.ListAppointmentsRequest{
			AccountID: "acc-admin",
			Status:    "approved",
		})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
		assert.Equal(t, "a2", resp.Appointments[0].ID)
	})

	t.Run("all matches everything", func(t *testing.T) {
		e := newEnv()
		e.apptRepo.listed = []*domain.Appointment{
			{ID: "a1", ServiceID: "svc-1", Status: domain.StatusPending},
			{ID: "a2", ServiceID: "svc-1", Status: domain.StatusDeclined},
		}

		resp, err := e.svc.List(context.Background(), &models.ListAppointmentsRequest{
			AccountID: "acc-admin",
			Status:    "all",
			ServiceID: "all",
		})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 2)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.List(context.Background(), &models.ListAppointmentsRequest{
			AccountID: "acc-admin",
			Status:    "cancelled",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("approve publishes notification", func(t *testing.T) {
		e := newEnv()
		resp, err := e.svc.UpdateStatus(context.Background(), "appt-pending", &models.UpdateStatusRequest{
			AccountID: "acc-admin",
			Status:    "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)

		event := e.publisher.wait(t)
		assert.Equal(t, domain.NotificationApproved, event.Type)
		assert.Equal(t, "appt-pending", event.Appointment.ID)
		assert.Equal(t, "Home Cleaning", event.ServiceName)
	})

	t.Run("decline publishes notification", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.UpdateStatus(context.Background(), "appt-pending", &models.UpdateStatusRequest{
			AccountID: "acc-admin",
			Status:    "declined",
		})
		require.NoError(t, err)

		event := e.publisher.wait(t)
		assert.Equal(t, domain.NotificationDeclined, event.Type)
	})

	t.Run("transition does not touch the price", func(t *testing.T) {
		e := newEnv()
		resp, err := e.svc.UpdateStatus(context.Background(), "appt-pending", &models.UpdateStatusRequest{
			AccountID: "acc-admin",
			Status:    "approved",
		})
		require.NoError(t, err)
		assert.InDelta(t, 60.4, resp.Price, 1e-9)
		assert.InDelta(t, 5.2, resp.DistanceKm, 1e-9)
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.UpdateStatus(context.Background(), "appt-pending", &models.UpdateStatusRequest{
			AccountID: "acc-john",
			Status:    "approved",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, e.apptRepo.updates)
	})

	t.Run("invalid transition is rejected", func(t *testing.T) {
		cases := []struct {
			id     string
			status string
		}{
			{"appt-pending", "completed"},
			{"appt-approved", "declined"},
			{"appt-completed", "approved"},
		}
		for _, tc := range cases {
			e := newEnv()
			_, err := e.svc.UpdateStatus(context.Background(), tc.id, &models.UpdateStatusRequest{
				AccountID: "acc-admin",
				Status:    tc.status,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.id, tc.status)
			assert.Empty(t, e.apptRepo.updates)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.UpdateStatus(context.Background(), "appt-pending", &models.UpdateStatusRequest{
			AccountID: "acc-admin",
			Status:    "cancelled",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		e := newEnv()
		_, err := e.svc.UpdateStatus(context.Background(), "missing", &models.UpdateStatusRequest{
			AccountID: "acc-admin",
			Status:    "approved",
		})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCompleteFromPayment(t *testing.T) {
	t.Run("approved appointment completes", func(t *testing.T) {
		e := newEnv()
		err := e.svc.CompleteFromPayment(context.Background(), "appt-approved")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, e.apptRepo.appointments["appt-approved"].Status)
	})

	t.Run("replay on completed appointment is a no-op", func(t *testing.T) {
		e := newEnv()
		err := e.svc.CompleteFromPayment(context.Background(), "appt-completed")
		require.NoError(t, err)
		assert.Empty(t, e.apptRepo.updates)
	})

	t.Run("pending appointment is not payable", func(t *testing.T) {
		e := newEnv()
		err := e.svc.CompleteFromPayment(context.Background(), "appt-pending")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("completion does not notify the customer", func(t *testing.T) {
		e := newEnv()
		require.NoError(t, e.svc.CompleteFromPayment(context.Background(), "appt-approved"))
		e.publisher.assertSilent(t)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		e := newEnv()
		err := e.svc.CompleteFromPayment(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestListByAccount(t *testing.T) {
	e := newEnv()
	e.apptRepo.listed = []*domain.Appointment{
		{ID: "a1", ServiceID: "svc-1", CustomerEmail: "john@example.com", Status: domain.StatusPending},
		{ID: "a2", ServiceID: "svc-1", CustomerEmail: "jane@example.com", Status: domain.StatusPending},
		{ID: "a3", ServiceID: "svc-1", CustomerEmail: "john@example.com", Status: domain.StatusApproved},
	}

	resp, err := e.svc.ListByAccount(context.Background(), "acc-john")
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)
	assert.Equal(t, "a1", resp.Appointments[0].ID)
	assert.Equal(t, "a3", resp.Appointments[1].ID)
}
