package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phuhk2908/rms-backend/shared/constant"
	"github.com/phuhk2908/rms-backend/shared/failure"
	"github.com/phuhk2908/rms-backend/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// TxManager runs a unit of work inside a single database transaction.
// Services depend on this interface so the transaction boundary can be faked
// out in tests.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
}

// WithinTx begins a read-committed transaction on the write connection, bounds
// row-lock waits with a local lock_timeout, and commits or rolls back
// atomically. A lock wait that exceeds the timeout surfaces as a retriable
// Conflict; callers may retry the whole operation after re-reading inputs.
func (c *Connection) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := c.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.ErrorWithStack(err)

		return failure.InternalError(fmt.Errorf("failed to begin transaction: %w", err)) //nolint:wrapcheck
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback after panic")
			}

			panic(p)
		}
	}()

	lockTimeout := c.lockTimeoutMillis
	if lockTimeout <= 0 {
		lockTimeout = 3000
	}

	// SET LOCAL scopes the timeout to this transaction only.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", lockTimeout)); err != nil {
		_ = tx.Rollback()

		return failure.InternalError(fmt.Errorf("failed to set lock timeout: %w", err)) //nolint:wrapcheck
	}

	if err = fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			log.Error().Err(rollbackErr).Msg("failed to rollback transaction")
		}

		return MapTxError(err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return MapTxError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// MapTxError converts driver-level concurrency failures into the retriable
// Conflict taxonomy while passing domain failures through untouched.
func MapTxError(err error) error {
	if err == nil {
		return nil
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeLockNotAvailable, constant.PqErrorCodeSerializationFail:
			return failure.Conflict("operation conflicted with a concurrent update, retry the request") //nolint:wrapcheck
		case constant.PqErrorCodeUniqueViolation:
			return failure.Conflict("a conflicting record already exists") //nolint:wrapcheck
		case constant.PqErrorCodeFkViolation:
			return failure.Conflict("record is still referenced by other records") //nolint:wrapcheck
		}
	}

	return failure.InternalError(err) //nolint:wrapcheck
}

// IsUniqueViolation reports whether err is a postgres unique-constraint error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
