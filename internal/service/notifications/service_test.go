package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
	"github.com/spotbook/appointment-service/pkg/ptr"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: htmlBody})
	return nil
}

type fakeMetrics struct {
	sent   []string
	failed []string
}

func (f *fakeMetrics) IncNotificationSent(t string)   { f.sent = append(f.sent, t) }
func (f *fakeMetrics) IncNotificationFailed(t string) { f.failed = append(f.failed, t) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func event(t domain.NotificationType) domain.AppointmentEvent {
	return domain.AppointmentEvent{
		Type: t,
		Appointment: domain.Appointment{
			ID:            "appt-1",
			CustomerName:  "John Doe",
			CustomerEmail: "john@example.com",
			Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			TimeSlot:      "9:00 AM - 11:00 AM",
			Location:      domain.Location{Address: "456 Customer Ave"},
			Price:         60.4,
			Notes:         ptr.Ptr("Please bring eco-friendly products"),
		},
		ServiceName: "Home Cleaning",
	}
}

func TestPublish(t *testing.T) {
	t.Run("booking email", func(t *testing.T) {
		mailer := &fakeMailer{}
		metrics := &fakeMetrics{}
		svc := NewService(mailer, metrics, nopLogger{})

		svc.Publish(context.Background(), event(domain.NotificationBooking))

		require.Len(t, mailer.sent, 1)
		email := mailer.sent[0]
		assert.Equal(t, "john@example.com", email.to)
		assert.Equal(t, "Your Appointment Booking Confirmation", email.subject)
		assert.Contains(t, email.body, "Home Cleaning")
		assert.Contains(t, email.body, "Tuesday, September 15, 2026")
		assert.Contains(t, email.body, "pending approval")
		assert.NotContains(t, email.body, "$60.40")

		assert.Equal(t, []string{"booking"}, metrics.sent)
	})

	t.Run("approved email carries the price", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewService(mailer, nil, nopLogger{})

		svc.Publish(context.Background(), event(domain.NotificationApproved))

		require.Len(t, mailer.sent, 1)
		email := mailer.sent[0]
		assert.Equal(t, "Your Appointment Has Been Approved", email.subject)
		assert.Contains(t, email.body, "$60.40")
		assert.Contains(t, email.body, "make the payment")
	})

	t.Run("declined email", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewService(mailer, nil, nopLogger{})

		svc.Publish(context.Background(), event(domain.NotificationDeclined))

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "Update on Your Appointment Request", mailer.sent[0].subject)
		assert.Contains(t, mailer.sent[0].body, "declined")
	})

	t.Run("send failure is swallowed and counted", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("smtp unreachable")}
		metrics := &fakeMetrics{}
		svc := NewService(mailer, metrics, nopLogger{})

		svc.Publish(context.Background(), event(domain.NotificationApproved))

		assert.Empty(t, metrics.sent)
		assert.Equal(t, []string{"approved"}, metrics.failed)
	})

	t.Run("missing email skips sending", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewService(mailer, nil, nopLogger{})

		e := event(domain.NotificationBooking)
		e.Appointment.CustomerEmail = ""
		svc.Publish(context.Background(), e)

		assert.Empty(t, mailer.sent)
	})
}
