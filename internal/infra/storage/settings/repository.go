package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository репозиторий для работы с настройками расписания бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpdateParams параметры частичного обновления настроек
// nil-поля не изменяются
type UpdateParams struct {
	SlotLengthMinutes *int
	BufferTimeMinutes *int
	CancellationHours *int
	WorkingHoursStart *types.TimeString
	WorkingHoursEnd   *types.TimeString
	Timezone          *string
}

// IsEmpty возвращает true, если ни одно поле не задано
func (p UpdateParams) IsEmpty() bool {
	return p.SlotLengthMinutes == nil &&
		p.BufferTimeMinutes == nil &&
		p.CancellationHours == nil &&
		p.WorkingHoursStart == nil &&
		p.WorkingHoursEnd == nil &&
		p.Timezone == nil
}

// Get получает настройки бизнеса
func (r *Repository) Get(ctx context.Context, businessID int64) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"slot_length_minutes",
		"buffer_time_minutes",
		"cancellation_hours",
		"working_hours_start",
		"working_hours_end",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("business_settings").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanSettings(executor.QueryRowContext(ctx, query, args...))
}

// CreateDefaults идемпотентно создает настройки по умолчанию
// Повторный вызов при существующей строке ничего не меняет (ON CONFLICT DO NOTHING),
// поэтому гонка двух первых чтений безопасна
func (r *Repository) CreateDefaults(ctx context.Context, defaults *domain.SchedulingSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_settings").
		Columns(
			"business_id",
			"slot_length_minutes",
			"buffer_time_minutes",
			"cancellation_hours",
			"working_hours_start",
			"working_hours_end",
			"timezone",
		).
		Values(
			defaults.BusinessID,
			defaults.SlotLengthMinutes,
			defaults.BufferTimeMinutes,
			defaults.CancellationHours,
			defaults.WorkingHoursStart,
			defaults.WorkingHoursEnd,
			defaults.Timezone,
		).
		Suffix("ON CONFLICT (business_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateDefaults - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateDefaults - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Update частично обновляет настройки бизнеса
// Типизированные Set-клаузы накапливаются только для заданных полей
func (r *Repository) Update(ctx context.Context, businessID int64, params UpdateParams) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("business_settings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": businessID})

	if params.SlotLengthMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_length_minutes", *params.SlotLengthMinutes)
	}
	if params.BufferTimeMinutes != nil {
		updateBuilder = updateBuilder.Set("buffer_time_minutes", *params.BufferTimeMinutes)
	}
	if params.CancellationHours != nil {
		updateBuilder = updateBuilder.Set("cancellation_hours", *params.CancellationHours)
	}
	if params.WorkingHoursStart != nil {
		updateBuilder = updateBuilder.Set("working_hours_start", *params.WorkingHoursStart)
	}
	if params.WorkingHoursEnd != nil {
		updateBuilder = updateBuilder.Set("working_hours_end", *params.WorkingHoursEnd)
	}
	if params.Timezone != nil {
		updateBuilder = updateBuilder.Set("timezone", *params.Timezone)
	}

	query, args, err := updateBuilder.
		Suffix(`RETURNING id, business_id, slot_length_minutes, buffer_time_minutes, cancellation_hours,
			working_hours_start, working_hours_end, timezone, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	return r.scanSettings(executor.QueryRowContext(ctx, query, args...))
}

func (r *Repository) scanSettings(row *sql.Row) (*domain.SchedulingSettings, error) {
	var s domain.SchedulingSettings
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.BusinessID,
		&s.SlotLengthMinutes,
		&s.BufferTimeMinutes,
		&s.CancellationHours,
		&s.WorkingHoursStart,
		&s.WorkingHoursEnd,
		&s.Timezone,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSettings - scan settings: %w", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
