package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента бизнеса по ID
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectCustomers().
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanCustomer(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindByContact ищет клиента бизнеса по email или телефону
// Email имеет приоритет; любой из аргументов может быть nil
func (r *Repository) FindByContact(ctx context.Context, businessID int64, email, phone *string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	contact := squirrel.Or{}
	if email != nil {
		contact = append(contact, squirrel.Eq{"email": *email})
	}
	if phone != nil {
		contact = append(contact, squirrel.Eq{"phone": *phone})
	}
	if len(contact) == 0 {
		return nil, ErrCustomerNotFound
	}

	query, args, err := selectCustomers().
		Where(squirrel.Eq{"business_id": businessID}).
		Where(contact).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByContact - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanCustomer(executor.QueryRowContext(ctx, query, args...), "FindByContact")
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("business_id", "full_name", "email", "phone").
		Values(c.BusinessID, c.FullName, c.Email, c.Phone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

func selectCustomers() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"full_name",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).From("customers")
}

func (r *Repository) scanCustomer(row *sql.Row, method string) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.BusinessID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %w", ErrScanRow, method, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
