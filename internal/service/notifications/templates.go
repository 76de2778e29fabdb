package notifications

import (
	"fmt"
	"strings"

	"github.com/spotbook/appointment-service/internal/domain"
)

// renderEmail возвращает тему и HTML тело письма для события
func renderEmail(event domain.AppointmentEvent) (subject string, body string) {
	appt := event.Appointment
	formattedDate := appt.Date.Format("Monday, January 2, 2006")

	switch event.Type {
	case domain.NotificationBooking:
		return "Your Appointment Booking Confirmation", fmt.Sprintf(`
			<h1>Thank you for booking with us, %s!</h1>
			<p>We have received your booking request for the following service:</p>
			%s
			<p>Your booking is currently <strong>pending approval</strong>. We'll notify you once it's approved or if any changes are needed.</p>
			<p>Thank you for choosing our services!</p>
		`, appt.CustomerName, detailsBlock(event, formattedDate, false))

	case domain.NotificationApproved:
		return "Your Appointment Has Been Approved", fmt.Sprintf(`
			<h1>Great news, %s!</h1>
			<p>Your appointment has been <strong style="color: #22c55e;">approved</strong>. Please find the details below:</p>
			%s
			<p>Please make the payment to confirm your appointment.</p>
			<p>If you have any questions, please don't hesitate to contact us.</p>
		`, appt.CustomerName, detailsBlock(event, formattedDate, true))

	case domain.NotificationDeclined:
		return "Update on Your Appointment Request", fmt.Sprintf(`
			<h1>Important Update, %s</h1>
			<p>We regret to inform you that your appointment request has been <strong style="color: #ef4444;">declined</strong>.</p>
			%s
			<p>This might be due to unavailability during your requested time or other scheduling conflicts.</p>
			<p>Please feel free to book again with a different time or date, or contact us for assistance.</p>
		`, appt.CustomerName, detailsBlock(event, formattedDate, false))

	default:
		return "Update on Your Appointment",
			"<p>There has been an update to your appointment. Please log in to check the details.</p>"
	}
}

// detailsBlock собирает общий блок деталей записи
// Цена показывается только в письме об одобрении (инструкции по оплате)
func detailsBlock(event domain.AppointmentEvent, formattedDate string, withPrice bool) string {
	appt := event.Appointment

	var b strings.Builder
	b.WriteString(`<div style="background-color: #f7f7f7; padding: 15px; border-radius: 5px; margin: 20px 0;">`)
	fmt.Fprintf(&b, "<p><strong>Service:</strong> %s</p>", event.ServiceName)
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", formattedDate)
	fmt.Fprintf(&b, "<p><strong>Time:</strong> %s</p>", appt.TimeSlot)
	fmt.Fprintf(&b, "<p><strong>Booking ID:</strong> %s</p>", appt.ID)
	if appt.Location.Address != "" {
		fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>", appt.Location.Address)
	}
	if withPrice {
		fmt.Fprintf(&b, "<p><strong>Price:</strong> $%.2f</p>", appt.Price)
	}
	if appt.Notes != nil && *appt.Notes != "" {
		fmt.Fprintf(&b, "<p><strong>Notes:</strong> %s</p>", *appt.Notes)
	}
	b.WriteString("</div>")

	return b.String()
}
