package scheduling

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

// fakeTx пустая транзакция для пометки контекста
// Репозитории в тестах фейковые, до SQL дело не доходит
type fakeTx struct{}

func (fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func txContext() context.Context {
	return dbmetrics.WithTx(context.Background(), fakeTx{})
}

type fakeAppointmentRepo struct {
	candidates []domain.AppointmentSummary
	durations  map[int64]int

	gotWindowStart time.Time
	gotWindowEnd   time.Time
	gotExcludeID   *int64
}

func (f *fakeAppointmentRepo) ListForUpdate(ctx context.Context, businessID, staffID int64, windowStart, windowEnd time.Time, excludeID *int64) ([]domain.AppointmentSummary, error) {
	f.gotWindowStart = windowStart
	f.gotWindowEnd = windowEnd
	f.gotExcludeID = excludeID

	result := make([]domain.AppointmentSummary, 0)
	for _, c := range f.candidates {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.StartAt.Before(windowStart) || !c.StartAt.Before(windowEnd) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) TotalDurations(ctx context.Context, businessID int64, ids []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(ids))
	for _, id := range ids {
		result[id] = f.durations[id]
	}
	return result, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetActiveByIDs(ctx context.Context, businessID int64, ids []int64) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			result = append(result, svc)
		}
	}
	return result, nil
}

type lockCall struct {
	op  string // "upsert" или "lock"
	day time.Time
}

type fakeDayLockRepo struct {
	calls []lockCall
}

func (f *fakeDayLockRepo) Upsert(ctx context.Context, businessID, staffID int64, day time.Time) error {
	f.calls = append(f.calls, lockCall{op: "upsert", day: day})
	return nil
}

func (f *fakeDayLockRepo) Lock(ctx context.Context, businessID, staffID int64, day time.Time) error {
	f.calls = append(f.calls, lockCall{op: "lock", day: day})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(appointments *fakeAppointmentRepo, services *fakeServiceRepo, locks *fakeDayLockRepo) *Service {
	return NewService(appointments, services, locks, nopLogger{})
}

func defaultServices() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, BusinessID: 10, Name: "Haircut", DurationMinutes: 30, Price: 25.0, IsActive: true},
		2: {ID: 2, BusinessID: 10, Name: "Beard trim", DurationMinutes: 15, Price: 10.0, IsActive: true},
	}}
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed.UTC()
}

func TestEvaluateBooking_RequiresTransaction(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultServices(), &fakeDayLockRepo{})

	_, err := svc.EvaluateBooking(context.Background(), EvaluateParams{
		BusinessID: 10,
		StaffID:    7,
		StartAt:    ts(t, "2026-03-10T09:00:00Z"),
		ServiceIDs: []int64{1},
	})

	assert.ErrorIs(t, err, ErrNoTransaction)
}

func TestEvaluateBooking_FreeCalendar(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-10T09:00:00Z"),
		ServiceIDs:    []int64{1, 2},
		BufferMinutes: 15,
	})

	require.NoError(t, err)
	assert.False(t, eval.HasConflicts())
	assert.Equal(t, 45, eval.DurationMinutes)
	require.Len(t, eval.Services, 2)
	assert.Equal(t, "Haircut", eval.Services[0].Name)
	assert.Equal(t, 25.0, eval.Services[0].Price)
}

func TestEvaluateBooking_BufferedAdjacencyIsLegal(t *testing.T) {
	// Существующая запись 09:00 + 30 мин, буфер 15: занято [08:45, 09:45)
	// Новая запись 10:00 + 30 мин, буфер 15: [09:45, 10:45) - касание, не конфликт
	appointments := &fakeAppointmentRepo{
		candidates: []domain.AppointmentSummary{
			{ID: 100, StartAt: ts(t, "2026-03-10T09:00:00Z")},
		},
		durations: map[int64]int{100: 30},
	}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-10T10:00:00Z"),
		ServiceIDs:    []int64{1},
		BufferMinutes: 15,
	})

	require.NoError(t, err)
	assert.False(t, eval.HasConflicts())
}

func TestEvaluateBooking_BufferOverlapConflicts(t *testing.T) {
	// Новая запись 09:45: [09:30, 10:30) пересекает занятое [08:45, 09:45)
	appointments := &fakeAppointmentRepo{
		candidates: []domain.AppointmentSummary{
			{ID: 100, StartAt: ts(t, "2026-03-10T09:00:00Z")},
		},
		durations: map[int64]int{100: 30},
	}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-10T09:45:00Z"),
		ServiceIDs:    []int64{1},
		BufferMinutes: 15,
	})

	require.NoError(t, err)
	require.True(t, eval.HasConflicts())
	assert.Equal(t, int64(100), eval.Conflicts[0].ID)
	assert.Equal(t, 30, eval.Conflicts[0].DurationMinutes)
}

func TestEvaluateBooking_ZeroBufferExactAdjacency(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		candidates: []domain.AppointmentSummary{
			{ID: 100, StartAt: ts(t, "2026-03-10T09:00:00Z")},
		},
		durations: map[int64]int{100: 30},
	}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	// Старт ровно в момент окончания предыдущей записи
	eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-10T09:30:00Z"),
		ServiceIDs:    []int64{1},
		BufferMinutes: 0,
	})

	require.NoError(t, err)
	assert.False(t, eval.HasConflicts())
}

func TestEvaluateBooking_ExcludesSelfOnReschedule(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		candidates: []domain.AppointmentSummary{
			{ID: 100, StartAt: ts(t, "2026-03-10T09:00:00Z")},
		},
		durations: map[int64]int{100: 30},
	}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	excludeID := int64(100)
	eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:           10,
		StaffID:              7,
		StartAt:              ts(t, "2026-03-10T09:15:00Z"),
		ServiceIDs:           []int64{1},
		BufferMinutes:        15,
		ExcludeAppointmentID: &excludeID,
	})

	require.NoError(t, err)
	assert.False(t, eval.HasConflicts())
	require.NotNil(t, appointments.gotExcludeID)
	assert.Equal(t, int64(100), *appointments.gotExcludeID)
}

func TestEvaluateBooking_MidnightCrossingConflict(t *testing.T) {
	// Запись 23:50 + 30 мин с буфером 15 занимает [23:35, 00:35) следующего дня
	appointments := &fakeAppointmentRepo{
		candidates: []domain.AppointmentSummary{
			{ID: 200, StartAt: ts(t, "2026-03-10T23:50:00Z")},
		},
		durations: map[int64]int{200: 30},
	}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-11T00:05:00Z"),
		ServiceIDs:    []int64{1},
		BufferMinutes: 15,
	})

	require.NoError(t, err)
	require.True(t, eval.HasConflicts())
	assert.Equal(t, int64(200), eval.Conflicts[0].ID)
}

func TestEvaluateBooking_LockOrderAscendingUpsertsFirst(t *testing.T) {
	locks := &fakeDayLockRepo{}
	svc := newTestService(&fakeAppointmentRepo{}, defaultServices(), locks)

	// Буфер выталкивает интервал в предыдущий день: 00:05 - 15 мин = 23:50
	_, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-11T00:05:00Z"),
		ServiceIDs:    []int64{1},
		BufferMinutes: 15,
	})
	require.NoError(t, err)

	require.Len(t, locks.calls, 4)

	// Все upsert идут до всех lock, дни по возрастанию в обеих фазах
	assert.Equal(t, "upsert", locks.calls[0].op)
	assert.Equal(t, "upsert", locks.calls[1].op)
	assert.Equal(t, "lock", locks.calls[2].op)
	assert.Equal(t, "lock", locks.calls[3].op)

	day1 := ts(t, "2026-03-10T00:00:00Z")
	day2 := ts(t, "2026-03-11T00:00:00Z")
	assert.True(t, locks.calls[0].day.Equal(day1))
	assert.True(t, locks.calls[1].day.Equal(day2))
	assert.True(t, locks.calls[2].day.Equal(day1))
	assert.True(t, locks.calls[3].day.Equal(day2))
}

func TestEvaluateBooking_WindowCoversBufferedInterval(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	_, err := svc.EvaluateBooking(txContext(), EvaluateParams{
		BusinessID:    10,
		StaffID:       7,
		StartAt:       ts(t, "2026-03-10T09:00:00Z"),
		ServiceIDs:    []int64{1},
		BufferMinutes: 15,
	})
	require.NoError(t, err)

	assert.True(t, appointments.gotWindowStart.Equal(ts(t, "2026-03-10T00:00:00Z")))
	assert.True(t, appointments.gotWindowEnd.Equal(ts(t, "2026-03-11T00:00:00Z")))
}

func TestResolveServices_DedupesPreservingOrder(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultServices(), &fakeDayLockRepo{})

	items, total, err := svc.ResolveServices(context.Background(), 10, []int64{2, 1, 2, 1})

	require.NoError(t, err)
	assert.Equal(t, 45, total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ServiceID)
	assert.Equal(t, int64(1), items[1].ServiceID)
}

func TestResolveServices_UnknownServiceFails(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultServices(), &fakeDayLockRepo{})

	_, _, err := svc.ResolveServices(context.Background(), 10, []int64{1, 999})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestResolveServices_EmptySetFails(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultServices(), &fakeDayLockRepo{})

	_, _, err := svc.ResolveServices(context.Background(), 10, nil)

	assert.ErrorIs(t, err, ErrEmptyServiceSet)
}

func TestResolveServices_ErrorsShareCategory(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, defaultServices(), &fakeDayLockRepo{})

	_, _, err := svc.ResolveServices(context.Background(), 10, nil)
	assert.ErrorIs(t, err, ErrInvalidServiceSet)

	_, _, err = svc.ResolveServices(context.Background(), 10, []int64{999})
	assert.ErrorIs(t, err, ErrInvalidServiceSet)
}

// Последовательные одобренные записи никогда не пересекаются с учётом буфера,
// независимо от порядка и плотности запросов
func TestEvaluateBooking_SequentialAcceptsNeverOverlap(t *testing.T) {
	appointments := &fakeAppointmentRepo{durations: map[int64]int{}}
	svc := newTestService(appointments, defaultServices(), &fakeDayLockRepo{})

	rng := rand.New(rand.NewSource(1))
	base := ts(t, "2026-03-10T00:00:00Z")
	bufferMinutes := 15

	var accepted []domain.AppointmentSummary
	nextID := int64(1)

	// Старты в пределах рабочего дня, чтобы буферы не выходили за его границы
	for i := 0; i < 200; i++ {
		startAt := base.Add(time.Duration(6*60+rng.Intn(16*60)) * time.Minute)
		serviceIDs := []int64{1}
		if rng.Intn(2) == 1 {
			serviceIDs = []int64{1, 2}
		}

		eval, err := svc.EvaluateBooking(txContext(), EvaluateParams{
			BusinessID:    10,
			StaffID:       7,
			StartAt:       startAt,
			ServiceIDs:    serviceIDs,
			BufferMinutes: bufferMinutes,
		})
		require.NoError(t, err)

		if eval.HasConflicts() {
			continue
		}

		// Записываем одобренную запись в "календарь" фейкового репозитория
		appointments.candidates = append(appointments.candidates, domain.AppointmentSummary{
			ID:      nextID,
			StartAt: startAt,
		})
		appointments.durations[nextID] = eval.DurationMinutes
		accepted = append(accepted, domain.AppointmentSummary{
			ID:              nextID,
			StartAt:         startAt,
			DurationMinutes: eval.DurationMinutes,
		})
		nextID++
	}

	require.NotEmpty(t, accepted)

	for i := 0; i < len(accepted); i++ {
		for j := i + 1; j < len(accepted); j++ {
			a := accepted[i].BufferedInterval(bufferMinutes)
			b := accepted[j].BufferedInterval(bufferMinutes)
			assert.False(t, a.Overlaps(b),
				"appointments %d and %d overlap: %s+%dm vs %s+%dm",
				accepted[i].ID, accepted[j].ID,
				accepted[i].StartAt.Format(time.RFC3339), accepted[i].DurationMinutes,
				accepted[j].StartAt.Format(time.RFC3339), accepted[j].DurationMinutes)
		}
	}
}
