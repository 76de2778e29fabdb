package book_appointment

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт не найден
	ErrAccountNotFound = errors.New("book_appointment: account not found")

	// ErrAccountNotApproved возвращается, когда аккаунт еще не одобрен администратором
	ErrAccountNotApproved = errors.New("book_appointment: account is not approved")

	// ErrEntitlementRequired возвращается, когда не оплачен регистрационный взнос
	ErrEntitlementRequired = errors.New("book_appointment: registration fee has not been paid")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrGeocodingFailed возвращается, когда адрес не удалось геокодировать
	ErrGeocodingFailed = errors.New("book_appointment: failed to geocode address")

	// ErrInvalidTimeSlot возвращается при слоте вне фиксированного набора
	ErrInvalidTimeSlot = errors.New("book_appointment: invalid time slot")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("book_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
