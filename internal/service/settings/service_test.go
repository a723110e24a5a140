package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeSettingsRepo struct {
	byBusiness map[int64]*domain.SchedulingSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byBusiness: make(map[int64]*domain.SchedulingSettings)}
}

func (f *fakeSettingsRepo) Get(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error) {
	st, ok := f.byBusiness[businessID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *st
	return &copied, nil
}

func (f *fakeSettingsRepo) CreateDefaults(ctx context.Context, defaults *domain.SchedulingSettings) error {
	if _, ok := f.byBusiness[defaults.BusinessID]; ok {
		return nil // ON CONFLICT DO NOTHING
	}
	copied := *defaults
	f.byBusiness[defaults.BusinessID] = &copied
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, businessID int64, params settingsRepo.UpdateParams) (*domain.SchedulingSettings, error) {
	st, ok := f.byBusiness[businessID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	if params.SlotLengthMinutes != nil {
		st.SlotLengthMinutes = *params.SlotLengthMinutes
	}
	if params.BufferTimeMinutes != nil {
		st.BufferTimeMinutes = *params.BufferTimeMinutes
	}
	if params.CancellationHours != nil {
		st.CancellationHours = *params.CancellationHours
	}
	if params.WorkingHoursStart != nil {
		st.WorkingHoursStart = *params.WorkingHoursStart
	}
	if params.WorkingHoursEnd != nil {
		st.WorkingHoursEnd = *params.WorkingHoursEnd
	}
	if params.Timezone != nil {
		st.Timezone = *params.Timezone
	}
	copied := *st
	return &copied, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestGetOrCreate_CreatesDefaultsLazily(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, "Europe/Istanbul", nopLogger{})

	st, err := svc.GetOrCreate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotLengthMinutes, st.SlotLengthMinutes)
	assert.Equal(t, domain.DefaultBufferTimeMinutes, st.BufferTimeMinutes)
	assert.Equal(t, domain.DefaultCancellationHours, st.CancellationHours)
	assert.Equal(t, "09:00", st.WorkingHoursStart.String())
	assert.Equal(t, "18:00", st.WorkingHoursEnd.String())
	assert.Equal(t, "Europe/Istanbul", st.Timezone)
}

func TestGetOrCreate_ReturnsExisting(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, "Europe/Istanbul", nopLogger{})

	existing := domain.DefaultSchedulingSettings(10, "UTC")
	existing.SlotLengthMinutes = 60
	require.NoError(t, repo.CreateDefaults(context.Background(), existing))

	st, err := svc.GetOrCreate(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 60, st.SlotLengthMinutes)
	assert.Equal(t, "UTC", st.Timezone)
}

func TestUpdate_AppliesPartialPatch(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, "Europe/Istanbul", nopLogger{})

	resp, err := svc.Update(context.Background(), 10, &models.UpdateSettingsRequest{
		SlotLengthMinutes: ptr.Ptr(45),
		BufferTimeMinutes: ptr.Ptr(0),
	})

	require.NoError(t, err)
	assert.Equal(t, 45, resp.SlotLengthMinutes)
	assert.Equal(t, 0, resp.BufferTimeMinutes)
	// Незатронутые поля остаются дефолтными
	assert.Equal(t, "09:00", resp.WorkingHoursStart)
	assert.Equal(t, domain.DefaultCancellationHours, resp.CancellationHours)
}

func TestUpdate_RejectsEmptyRequest(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), "Europe/Istanbul", nopLogger{})

	_, err := svc.Update(context.Background(), 10, &models.UpdateSettingsRequest{})

	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUpdate_RejectsSlotLengthOutOfRange(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), "Europe/Istanbul", nopLogger{})

	_, err := svc.Update(context.Background(), 10, &models.UpdateSettingsRequest{
		SlotLengthMinutes: ptr.Ptr(3),
	})

	assert.ErrorIs(t, err, ErrInvalidSlotLength)
}

func TestUpdate_ValidatesMergedWorkingHours(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewService(repo, "Europe/Istanbul", nopLogger{})

	// Патч одной границы проверяется против текущей второй: 19:00 > 18:00
	_, err := svc.Update(context.Background(), 10, &models.UpdateSettingsRequest{
		WorkingHoursStart: ptr.Ptr("19:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestUpdate_RejectsMalformedWorkingHours(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), "Europe/Istanbul", nopLogger{})

	_, err := svc.Update(context.Background(), 10, &models.UpdateSettingsRequest{
		WorkingHoursEnd: ptr.Ptr("25:99"),
	})

	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestUpdate_RejectsUnknownTimezone(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), "Europe/Istanbul", nopLogger{})

	_, err := svc.Update(context.Background(), 10, &models.UpdateSettingsRequest{
		Timezone: ptr.Ptr("Mars/Olympus"),
	})

	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
