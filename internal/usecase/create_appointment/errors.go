package create_appointment

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден или неактивен
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrServiceNotFound возвращается, когда часть услуг не найдена или неактивна
	ErrServiceNotFound = errors.New("create_appointment: one or more services not found")

	// ErrTimeSlotConflict возвращается, когда интервал записи пересекается
	// с существующей записью сотрудника (с учётом буфера)
	ErrTimeSlotConflict = errors.New("create_appointment: time slot conflicts with an existing appointment")

	// ErrStartInPast возвращается при попытке записи на прошедшее время
	ErrStartInPast = errors.New("create_appointment: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrStorageUnavailable возвращается при ошибках БД; вызывающий решает, повторять ли
	ErrStorageUnavailable = errors.New("create_appointment: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
