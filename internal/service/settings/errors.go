package settings

import "errors"

var (
	// ErrInvalidSlotLength возвращается при длине слота вне допустимого диапазона
	ErrInvalidSlotLength = errors.New("settings: invalid slot length")

	// ErrInvalidBufferTime возвращается при буфере вне допустимого диапазона
	ErrInvalidBufferTime = errors.New("settings: invalid buffer time")

	// ErrInvalidCancellationHours возвращается при отрицательном окне отмены
	ErrInvalidCancellationHours = errors.New("settings: invalid cancellation hours")

	// ErrInvalidWorkingHours возвращается при некорректных рабочих часах
	ErrInvalidWorkingHours = errors.New("settings: invalid working hours")

	// ErrInvalidTimezone возвращается при неизвестной IANA таймзоне
	ErrInvalidTimezone = errors.New("settings: invalid timezone")

	// ErrEmptyUpdate возвращается, когда в запросе обновления нет ни одного поля
	ErrEmptyUpdate = errors.New("settings: no fields to update")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
