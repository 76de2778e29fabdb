package geo

import "errors"

var (
	// ErrEmptyAddress возвращается при попытке разрешить пустой адрес
	ErrEmptyAddress = errors.New("geo: address is empty")
)
