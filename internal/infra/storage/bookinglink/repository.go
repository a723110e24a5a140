package bookinglink

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

// Repository репозиторий для работы с публичными ссылками на запись
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ссылок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую ссылку на запись
func (r *Repository) Create(ctx context.Context, link *domain.BookingLink) (*domain.BookingLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_links").
		Columns("business_id", "token", "name", "is_active").
		Values(link.BusinessID, link.Token, link.Name, link.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created := *link
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - scan booking link: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// GetActiveByToken разрешает токен в активную ссылку на запись
// Деактивированная ссылка считается не найденной
func (r *Repository) GetActiveByToken(ctx context.Context, token string) (*domain.BookingLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"token",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("booking_links").
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByToken - build select query: %w", ErrBuildQuery, err)
	}

	var link domain.BookingLink
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&link.ID,
		&link.BusinessID,
		&link.Token,
		&link.Name,
		&link.IsActive,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByToken - scan booking link: %w", ErrScanRow, err)
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	return &link, nil
}
