package daylock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий синтетических строк-замков staff_day_locks
// Строки не несут бизнес-смысла: они существуют только чтобы сериализовать
// конкурентные попытки бронирования одного дня одного сотрудника.
// Строки никогда не удаляются и наружу не отдаются.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория замков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert идемпотентно создает строку замка для (business, staff, day)
// Если строка уже есть - no-op (ON CONFLICT DO NOTHING), состояние не меняется.
// Upsert без последующего Lock недостаточен: две транзакции, одновременно
// бронирующие ранее пустой день, обе увидели бы "замка нет" и прошли дальше
func (r *Repository) Upsert(ctx context.Context, businessID, staffID int64, day time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_day_locks").
		Columns("business_id", "staff_id", "day_date").
		Values(businessID, staffID, day.Format("2006-01-02")).
		Suffix("ON CONFLICT (business_id, staff_id, day_date) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Lock берет эксклюзивную блокировку строки замка до конца текущей транзакции
func (r *Repository) Lock(ctx context.Context, businessID, staffID int64, day time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("staff_day_locks").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"day_date": day.Format("2006-01-02")}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Lock - build select query: %w", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// Строка создана этим же вызовом Guard'а на шаге Upsert
		return fmt.Errorf("%w: Lock - lock row missing for day %s", ErrExecQuery, day.Format("2006-01-02"))
	}
	if err != nil {
		return fmt.Errorf("%w: Lock - acquire row lock: %w", ErrExecQuery, err)
	}

	return nil
}
