package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrNotCancellable возвращается для записей в финальном статусе
	ErrNotCancellable = errors.New("appointments: appointment cannot be cancelled")

	// ErrCancellationWindowPassed возвращается, когда до начала записи
	// осталось меньше, чем окно отмены из настроек бизнеса
	ErrCancellationWindowPassed = errors.New("appointments: cancellation window has passed")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("appointments: invalid status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
