package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	byID map[int64]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	apt, ok := f.byID[id]
	if !ok || apt.BusinessID != businessID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *apt
	return &copied, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, businessID, id int64, params appointmentRepo.UpdateParams) error {
	apt, ok := f.byID[id]
	if !ok || apt.BusinessID != businessID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	if params.Status != nil {
		apt.Status = *params.Status
	}
	if params.AdminNote != nil {
		apt.AdminNote = params.AdminNote
	}
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, businessID, id int64, status domain.AppointmentStatus) error {
	return f.Update(ctx, businessID, id, appointmentRepo.UpdateParams{Status: &status})
}

type fakeSettingsProvider struct {
	cancellationHours int
}

func (f *fakeSettingsProvider) GetOrCreate(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error) {
	st := domain.DefaultSchedulingSettings(businessID, "UTC")
	st.CancellationHours = f.cancellationHours
	return st, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeAppointmentRepo, cancellationHours int, now time.Time) *Service {
	svc := NewService(repo, &fakeSettingsProvider{cancellationHours: cancellationHours}, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func scheduledAppointment(id int64, startAt time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		BusinessID: 10,
		CustomerID: 1,
		StaffID:    7,
		StartAt:    startAt,
		Status:     domain.StatusScheduled,
		Services: []domain.AppointmentServiceItem{
			{ServiceID: 1, Name: "Haircut", DurationMinutes: 30, Price: 25.0},
		},
	}
}

func TestCancel_WithinWindow(t *testing.T) {
	startAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{
		100: scheduledAppointment(100, startAt),
	}}
	// За 48 часов до начала, окно 24 часа
	svc := newTestService(repo, 24, startAt.Add(-48*time.Hour))

	resp, err := svc.Cancel(context.Background(), 10, 100, &models.CancelAppointmentRequest{
		Reason: ptr.Ptr("client asked"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.AdminNote)
	assert.Equal(t, "client asked", *resp.AdminNote)
	assert.Equal(t, domain.StatusCancelled, repo.byID[100].Status)
}

func TestCancel_WindowPassed(t *testing.T) {
	startAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{
		100: scheduledAppointment(100, startAt),
	}}
	// За 2 часа до начала, окно 24 часа
	svc := newTestService(repo, 24, startAt.Add(-2*time.Hour))

	_, err := svc.Cancel(context.Background(), 10, 100, &models.CancelAppointmentRequest{})

	assert.ErrorIs(t, err, ErrCancellationWindowPassed)
	assert.Equal(t, domain.StatusScheduled, repo.byID[100].Status)
}

func TestCancel_ForceSkipsWindow(t *testing.T) {
	startAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{
		100: scheduledAppointment(100, startAt),
	}}
	svc := newTestService(repo, 24, startAt.Add(-2*time.Hour))

	resp, err := svc.Cancel(context.Background(), 10, 100, &models.CancelAppointmentRequest{Force: true})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancel_CompletedIsNotCancellable(t *testing.T) {
	startAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	apt := scheduledAppointment(100, startAt)
	apt.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{100: apt}}
	svc := newTestService(repo, 24, startAt.Add(-48*time.Hour))

	_, err := svc.Cancel(context.Background(), 10, 100, &models.CancelAppointmentRequest{})

	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancel_WrongBusinessIsNotFound(t *testing.T) {
	startAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{
		100: scheduledAppointment(100, startAt),
	}}
	svc := newTestService(repo, 24, startAt.Add(-48*time.Hour))

	_, err := svc.Cancel(context.Background(), 99, 100, &models.CancelAppointmentRequest{})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_RejectsCancelledTarget(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{}}
	svc := newTestService(repo, 24, time.Now())

	_, err := svc.UpdateStatus(context.Background(), 10, 100, &models.UpdateStatusRequest{Status: "cancelled"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_MovesToCompleted(t *testing.T) {
	startAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{
		100: scheduledAppointment(100, startAt),
	}}
	svc := newTestService(repo, 24, startAt.Add(time.Hour))

	resp, err := svc.UpdateStatus(context.Background(), 10, 100, &models.UpdateStatusRequest{Status: "completed"})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{}}
	svc := newTestService(repo, 24, time.Now())

	_, err := svc.UpdateStatus(context.Background(), 10, 100, &models.UpdateStatusRequest{Status: "paused"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}
