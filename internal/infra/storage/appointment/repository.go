package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpdateParams параметры частичного обновления записи
// nil-поля не изменяются
type UpdateParams struct {
	StartAt      *time.Time
	StaffID      *int64
	Status       *domain.AppointmentStatus
	Notes        *string
	AdminNote    *string
	StaffNote    *string
	CustomerNote *string
}

// Create создает новую запись
// Услуги привязываются отдельным вызовом AddServices в той же транзакции
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"customer_id",
			"staff_id",
			"start_at",
			"status",
			"notes",
			"admin_note",
			"staff_note",
			"customer_note",
		).
		Values(
			apt.BusinessID,
			apt.CustomerID,
			apt.StaffID,
			apt.StartAt.UTC(),
			apt.Status,
			apt.Notes,
			apt.AdminNote,
			apt.StaffNote,
			apt.CustomerNote,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&apt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return apt, nil
}

// AddServices привязывает услуги к записи со снапшотом цены на момент бронирования
func (r *Repository) AddServices(ctx context.Context, appointmentID int64, items []domain.AppointmentServiceItem) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_id", "price")
	for _, item := range items {
		insertBuilder = insertBuilder.Values(appointmentID, item.ServiceID, item.Price)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddServices - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddServices - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ReplaceServices заменяет набор услуг записи
func (r *Repository) ReplaceServices(ctx context.Context, appointmentID int64, items []domain.AppointmentServiceItem) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute delete: %w", ErrExecQuery, err)
	}

	return r.AddServices(ctx, appointmentID, items)
}

// GetByID получает запись с услугами (tenant-safe)
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	return r.getByID(ctx, businessID, id, false)
}

// GetByIDForUpdate получает запись с услугами и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	return r.getByID(ctx, businessID, id, true)
}

func (r *Repository) getByID(ctx context.Context, businessID, id int64, forUpdate bool) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"business_id",
		"customer_id",
		"staff_id",
		"start_at",
		"status",
		"notes",
		"admin_note",
		"staff_note",
		"customer_note",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"business_id": businessID})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - build select query: %w", ErrBuildQuery, err)
	}

	var apt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&apt.ID,
		&apt.BusinessID,
		&apt.CustomerID,
		&apt.StaffID,
		&apt.StartAt,
		&apt.Status,
		&apt.Notes,
		&apt.AdminNote,
		&apt.StaffNote,
		&apt.CustomerNote,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - scan appointment: %w", ErrScanRow, err)
	}

	apt.StartAt = apt.StartAt.UTC()
	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	services, err := r.listServices(ctx, apt.ID)
	if err != nil {
		return nil, err
	}
	apt.Services = services

	return &apt, nil
}

// listServices получает услуги записи с ценами-снапшотами
func (r *Repository) listServices(ctx context.Context, appointmentID int64) ([]domain.AppointmentServiceItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"aps.service_id",
		"s.name",
		"s.duration_minutes",
		"aps.price",
	).
		From("appointment_services aps").
		Join("services s ON s.id = aps.service_id").
		Where(squirrel.Eq{"aps.appointment_id": appointmentID}).
		OrderBy("aps.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listServices - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.AppointmentServiceItem, 0)
	for rows.Next() {
		var item domain.AppointmentServiceItem
		if err := rows.Scan(&item.ServiceID, &item.Name, &item.DurationMinutes, &item.Price); err != nil {
			return nil, fmt.Errorf("%w: listServices - scan row: %w", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listServices - rows error: %w", ErrScanRow, err)
	}

	return items, nil
}

// ListForUpdate получает и блокирует неотменённые записи сотрудника,
// начинающиеся в окне [windowStart, windowEnd)
// Сортировка по start_at ASC обязательна: одинаковый порядок блокировок
// у конкурентных транзакций исключает взаимный deadlock.
// Возвращает только id + start_at; длительности добирает TotalDurations
func (r *Repository) ListForUpdate(
	ctx context.Context,
	businessID, staffID int64,
	windowStart, windowEnd time.Time,
	excludeID *int64,
) ([]domain.AppointmentSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "start_at").
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"start_at": windowStart.UTC()}).
		Where(squirrel.Lt{"start_at": windowEnd.UTC()}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.
		OrderBy("start_at ASC").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForUpdate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForUpdate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	summaries := make([]domain.AppointmentSummary, 0)
	for rows.Next() {
		var s domain.AppointmentSummary
		if err := rows.Scan(&s.ID, &s.StartAt); err != nil {
			return nil, fmt.Errorf("%w: ListForUpdate - scan row: %w", ErrScanRow, err)
		}
		s.StartAt = s.StartAt.UTC()
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForUpdate - rows error: %w", ErrScanRow, err)
	}

	return summaries, nil
}

// TotalDurations возвращает суммарную длительность услуг для набора записей
// Записи без привязанных услуг в результат не попадают (считаются нулевыми)
func (r *Repository) TotalDurations(ctx context.Context, businessID int64, ids []int64) (map[int64]int, error) {
	durations := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return durations, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"COALESCE(SUM(s.duration_minutes), 0) AS total_duration",
	).
		From("appointments a").
		Join("appointment_services aps ON aps.appointment_id = a.id").
		Join("services s ON s.id = aps.service_id AND s.business_id = a.business_id").
		Where(squirrel.Eq{"a.business_id": businessID}).
		Where(squirrel.Eq{"a.id": ids}).
		GroupBy("a.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TotalDurations - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TotalDurations - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var total int
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("%w: TotalDurations - scan row: %w", ErrScanRow, err)
		}
		durations[id] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TotalDurations - rows error: %w", ErrScanRow, err)
	}

	return durations, nil
}

// ListWithDurations получает неотменённые записи сотрудника в окне [from, to)
// вместе с суммарной длительностью услуг, по возрастанию start_at
// Используется генератором слотов (read-only, без блокировок)
func (r *Repository) ListWithDurations(
	ctx context.Context,
	businessID, staffID int64,
	from, to time.Time,
) ([]domain.AppointmentSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.start_at",
		"COALESCE(SUM(s.duration_minutes), 0) AS total_duration",
	).
		From("appointments a").
		Join("appointment_services aps ON aps.appointment_id = a.id").
		Join("services s ON s.id = aps.service_id AND s.business_id = a.business_id").
		Where(squirrel.Eq{"a.business_id": businessID}).
		Where(squirrel.Eq{"a.staff_id": staffID}).
		Where(squirrel.GtOrEq{"a.start_at": from.UTC()}).
		Where(squirrel.Lt{"a.start_at": to.UTC()}).
		Where(squirrel.NotEq{"a.status": domain.StatusCancelled}).
		GroupBy("a.id", "a.start_at").
		OrderBy("a.start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithDurations - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithDurations - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	summaries := make([]domain.AppointmentSummary, 0)
	for rows.Next() {
		var s domain.AppointmentSummary
		if err := rows.Scan(&s.ID, &s.StartAt, &s.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: ListWithDurations - scan row: %w", ErrScanRow, err)
		}
		s.StartAt = s.StartAt.UTC()
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithDurations - rows error: %w", ErrScanRow, err)
	}

	return summaries, nil
}

// Update частично обновляет запись (tenant-safe)
func (r *Repository) Update(ctx context.Context, businessID, id int64, params UpdateParams) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"business_id": businessID})

	if params.StartAt != nil {
		updateBuilder = updateBuilder.Set("start_at", params.StartAt.UTC())
	}
	if params.StaffID != nil {
		updateBuilder = updateBuilder.Set("staff_id", *params.StaffID)
	}
	if params.Status != nil {
		updateBuilder = updateBuilder.Set("status", *params.Status)
	}
	if params.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *params.Notes)
	}
	if params.AdminNote != nil {
		updateBuilder = updateBuilder.Set("admin_note", *params.AdminNote)
	}
	if params.StaffNote != nil {
		updateBuilder = updateBuilder.Set("staff_note", *params.StaffNote)
	}
	if params.CustomerNote != nil {
		updateBuilder = updateBuilder.Set("customer_note", *params.CustomerNote)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus обновляет статус записи (tenant-safe)
func (r *Repository) UpdateStatus(ctx context.Context, businessID, id int64, status domain.AppointmentStatus) error {
	return r.Update(ctx, businessID, id, UpdateParams{Status: &status})
}
