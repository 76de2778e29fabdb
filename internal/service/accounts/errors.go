package accounts

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт не найден
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken возвращается при регистрации на занятый email
	ErrEmailTaken = errors.New("email already registered")

	// ErrAccessDenied возвращается, когда у аккаунта нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("accounts service: internal error")
)
