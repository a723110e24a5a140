package create_booking_link

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookinglinks"
)

type BookingLinksService interface {
	Create(ctx context.Context, businessID int64, name string) (*bookinglinks.CreateLinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
