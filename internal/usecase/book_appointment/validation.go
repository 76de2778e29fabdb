package book_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
)

// validateRequest проверяет входные данные заявки
// Дата и слот проверяются отдельно, т.к. дают собственные сентинелы
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}

	if len(strings.TrimSpace(req.CustomerName)) < domain.MinCustomerNameLength {
		return fmt.Errorf("%w: customer name must be at least %d characters long",
			ErrInvalidInput, domain.MinCustomerNameLength)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("%w: customer email is invalid", ErrInvalidInput)
	}

	if len(strings.TrimSpace(req.CustomerPhone)) < domain.MinPhoneLength {
		return fmt.Errorf("%w: customer phone must be at least %d characters long",
			ErrInvalidInput, domain.MinPhoneLength)
	}

	if len(strings.TrimSpace(req.Address)) < domain.MinAddressLength {
		return fmt.Errorf("%w: address must be at least %d characters long",
			ErrInvalidInput, domain.MinAddressLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateTimeSlot проверяет, что слот входит в фиксированный набор
func validateTimeSlot(slot string) error {
	if !domain.IsValidTimeSlot(slot) {
		return fmt.Errorf("%w: %q is not an offered time slot", ErrInvalidTimeSlot, slot)
	}
	return nil
}

// validateDate проверяет дату записи: не нулевая и не в прошлом
func validateDate(date time.Time, now time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return fmt.Errorf("%w: date must not be in the past", ErrInvalidDate)
	}

	return nil
}
