package geocoder

import "errors"

var (
	// ErrAddressNotFound возвращается, когда провайдер не нашел адрес
	// или результат неоднозначен
	ErrAddressNotFound = errors.New("geocoder client: address not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geocoder client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("geocoder client: invalid response")
)
