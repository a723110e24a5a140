package get_available_slots

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден или неактивен
	ErrStaffNotFound = errors.New("get_available_slots: staff member not found")

	// ErrServiceNotFound возвращается, когда часть услуг не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_slots: one or more services not found")

	// ErrInvalidWorkingHours возвращается, когда в настройках бизнеса
	// конец рабочего дня не позже начала
	ErrInvalidWorkingHours = errors.New("get_available_slots: business has invalid working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
