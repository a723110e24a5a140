package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrNotReschedulable возвращается для записей в финальном статусе
	ErrNotReschedulable = errors.New("update_appointment: appointment cannot be rescheduled")

	// ErrStaffNotFound возвращается, когда целевой сотрудник не найден
	ErrStaffNotFound = errors.New("update_appointment: staff member not found")

	// ErrServiceNotFound возвращается, когда часть услуг не найдена или неактивна
	ErrServiceNotFound = errors.New("update_appointment: one or more services not found")

	// ErrTimeSlotConflict возвращается, когда новый интервал пересекается
	// с другой записью сотрудника (сама переносимая запись не учитывается)
	ErrTimeSlotConflict = errors.New("update_appointment: time slot conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrStorageUnavailable возвращается при ошибках БД; вызывающий решает, повторять ли
	ErrStorageUnavailable = errors.New("update_appointment: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
