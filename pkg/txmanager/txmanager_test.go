package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/daylock"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

type fakeTx struct {
	commits   int
	rollbacks int
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
func (f *fakeTx) Commit() error   { f.commits++; return nil }
func (f *fakeTx) Rollback() error { f.rollbacks++; return nil }

type fakeBeginner struct {
	tx     *fakeTx
	begins int
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	return f.tx, nil
}

func newTestManager() (*TransactionManager, *fakeBeginner) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	return &TransactionManager{db: beginner}, beginner
}

// deadlockThroughStack воспроизводит цепочку обёрток, с которой deadlock
// доезжает до менеджера: репозиторий замков оборачивает ошибку драйвера,
// сервис расписания оборачивает ошибку репозитория
func deadlockThroughStack() error {
	pqErr := &pq.Error{Code: "40P01"}
	repoErr := fmt.Errorf("%w: Lock - acquire row lock: %w", daylock.ErrExecQuery, pqErr)
	return fmt.Errorf("%w: EvaluateBooking - lock day: %w", scheduling.ErrStorageUnavailable, repoErr)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}

// Ошибка драйвера должна оставаться в цепочке через все слои обёрток,
// иначе deadlock на блокировке дня превращается в постоянную ошибку
func TestIsRetryable_SurvivesRepositoryAndServiceWrapping(t *testing.T) {
	err := deadlockThroughStack()

	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, scheduling.ErrStorageUnavailable)
	assert.ErrorIs(t, err, daylock.ErrExecQuery)
}

func TestDoSerializable_RetriesDeadlockThenSucceeds(t *testing.T) {
	m, beginner := newTestManager()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		require.True(t, dbmetrics.IsInTransaction(ctx))
		if attempts == 1 {
			return deadlockThroughStack()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, beginner.begins)
	assert.Equal(t, 1, beginner.tx.rollbacks)
	assert.Equal(t, 1, beginner.tx.commits)
}

func TestDoSerializable_NonRetryableFailsFast(t *testing.T) {
	m, beginner := newTestManager()

	wantErr := errors.New("business rule violated")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, beginner.begins)
	assert.Equal(t, 0, beginner.tx.commits)
}

func TestDoSerializable_ExhaustsAfterMaxAttempts(t *testing.T) {
	m, _ := newTestManager()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return deadlockThroughStack()
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, maxAttempts, attempts)
	// Исходная причина остаётся в цепочке для логов и маппинга в 503
	assert.ErrorIs(t, err, scheduling.ErrStorageUnavailable)
}
