package public_booking

import (
	"context"

	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	publicBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
)

type PublicBookingUseCase interface {
	Execute(ctx context.Context, req *publicBooking.Request) (*appointmentModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
