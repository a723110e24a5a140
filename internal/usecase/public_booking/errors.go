package public_booking

import "errors"

var (
	// ErrLinkNotFound возвращается по неизвестному или отключённому токену
	ErrLinkNotFound = errors.New("public_booking: booking link not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("public_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("public_booking: internal error")
)
