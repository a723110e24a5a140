package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	staffRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []domain.AppointmentSummary
}

func (f *fakeAppointmentRepo) ListWithDurations(ctx context.Context, businessID, staffID int64, from, to time.Time) ([]domain.AppointmentSummary, error) {
	result := make([]domain.AppointmentSummary, 0)
	for _, apt := range f.appointments {
		if apt.StartAt.Before(from) || !apt.StartAt.Before(to) {
			continue
		}
		result = append(result, apt)
	}
	return result, nil
}

type fakeStaffRepo struct {
	known map[int64]bool
}

func (f *fakeStaffRepo) GetActive(ctx context.Context, businessID, staffID int64) (*domain.StaffMember, error) {
	if !f.known[staffID] {
		return nil, staffRepo.ErrStaffNotFound
	}
	return &domain.StaffMember{ID: staffID, BusinessID: businessID, IsActive: true}, nil
}

type fakeServiceResolver struct {
	durations map[int64]int
}

func (f *fakeServiceResolver) ResolveServices(ctx context.Context, businessID int64, serviceIDs []int64) ([]domain.AppointmentServiceItem, int, error) {
	total := 0
	items := make([]domain.AppointmentServiceItem, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		d := f.durations[id]
		total += d
		items = append(items, domain.AppointmentServiceItem{ServiceID: id, DurationMinutes: d})
	}
	return items, total, nil
}

type fakeSettingsProvider struct {
	settings *domain.SchedulingSettings
}

func (f *fakeSettingsProvider) GetOrCreate(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error) {
	return f.settings, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func utcSettings(slotLength, buffer int, start, end string) *domain.SchedulingSettings {
	return &domain.SchedulingSettings{
		BusinessID:        10,
		SlotLengthMinutes: slotLength,
		BufferTimeMinutes: buffer,
		CancellationHours: 24,
		WorkingHoursStart: types.TimeString(start),
		WorkingHoursEnd:   types.TimeString(end),
		Timezone:          "UTC",
	}
}

func newTestUseCase(appointments *fakeAppointmentRepo, settings *domain.SchedulingSettings, now time.Time) *UseCase {
	uc := NewUseCase(
		appointments,
		&fakeStaffRepo{known: map[int64]bool{7: true}},
		&fakeServiceResolver{durations: map[int64]int{1: 30, 2: 60}},
		&fakeSettingsProvider{settings: settings},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func slotStarts(resp *Response) []string {
	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartAt)
	}
	return starts
}

func TestExecute_FreeDayFullGrid(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, utcSettings(30, 0, "09:00", "10:00"), now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10T09:00:00", "2026-03-10T09:30:00"}, slotStarts(resp))
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "2026-03-10", resp.Date)
}

func TestExecute_TodayDropsPastSlots(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	// Сейчас 09:15, слот 09:00 уже в прошлом
	now := time.Date(2026, 3, 10, 9, 15, 42, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, utcSettings(30, 0, "09:00", "10:00"), now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10T09:30:00"}, slotStarts(resp))
}

func TestExecute_TodayKeepsSlotAtExactNow(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	// Слот, начинающийся ровно "сейчас", ещё доступен
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, utcSettings(30, 0, "09:00", "10:00"), now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10T09:30:00"}, slotStarts(resp))
}

func TestExecute_BookedSlotExcluded(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentRepo{appointments: []domain.AppointmentSummary{
		{ID: 100, StartAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), DurationMinutes: 30},
	}}
	uc := newTestUseCase(appointments, utcSettings(30, 0, "09:00", "10:00"), now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10T09:30:00"}, slotStarts(resp))
}

func TestExecute_BufferBlocksNeighbours(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	// Запись 10:00-10:30 с буфером 15 блокирует [09:45, 10:45)
	// Буферизованные кандидаты: 09:30 -> [09:15, 10:15) и 10:30 -> [10:15, 11:15)
	// пересекаются, 09:00 -> [08:45, 09:45) и 11:00 -> [10:45, 11:45) касаются
	appointments := &fakeAppointmentRepo{appointments: []domain.AppointmentSummary{
		{ID: 100, StartAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), DurationMinutes: 30},
	}}
	uc := newTestUseCase(appointments, utcSettings(30, 15, "09:00", "12:00"), now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-03-10T09:00:00",
		"2026-03-10T11:00:00",
		"2026-03-10T11:30:00",
	}, slotStarts(resp))
}

func TestExecute_PreviousDaySpillBlocksMorning(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	// Запись 23:30-00:30 накануне с буфером 15 блокирует [23:15, 00:45)
	// Кандидаты: 00:00 -> [23:45, 00:45) и 00:30 -> [00:15, 01:15) пересекаются,
	// 01:00 -> [00:45, 01:45) касается
	appointments := &fakeAppointmentRepo{appointments: []domain.AppointmentSummary{
		{ID: 100, StartAt: time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC), DurationMinutes: 60},
	}}
	uc := newTestUseCase(appointments, utcSettings(30, 15, "00:00", "02:00"), now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-03-10T01:00:00",
		"2026-03-10T01:30:00",
	}, slotStarts(resp))
}

func TestExecute_ServiceDurationShrinksGrid(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, utcSettings(30, 0, "09:00", "10:00"), now)

	// Услуга на 60 минут: в часовой рабочий день влезает только 09:00
	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: 10,
		StaffID:    7,
		Date:       date,
		ServiceIDs: []int64{2},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10T09:00:00"}, slotStarts(resp))
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_TenantTimezoneBoundaries(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	settings := utcSettings(30, 0, "09:00", "10:00")
	settings.Timezone = "Europe/Istanbul"

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	// 09:00 по Стамбулу = 06:00 UTC; запись на 06:00 UTC закрывает первый слот
	appointments := &fakeAppointmentRepo{appointments: []domain.AppointmentSummary{
		{ID: 100, StartAt: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC), DurationMinutes: 30},
	}}
	uc := newTestUseCase(appointments, settings, now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10T09:30:00"}, slotStarts(resp))
	assert.Equal(t, "Europe/Istanbul", resp.Timezone)
}

func TestExecute_UnknownStaff(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, utcSettings(30, 0, "09:00", "10:00"), time.Now())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 99, Date: date})

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_InvalidWorkingHours(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAppointmentRepo{}, utcSettings(30, 0, "18:00", "09:00"), time.Now())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 10, StaffID: 7, Date: date})

	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}
