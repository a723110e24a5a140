package cancel_appointment

import (
	"context"

	appointmentModels "github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Cancel(ctx context.Context, businessID, id int64, req *appointmentModels.CancelAppointmentRequest) (*appointmentModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
