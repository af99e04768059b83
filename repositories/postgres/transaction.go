package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

type txKey struct{}

// TxManager runs repository calls against a single *sql.Tx carried in the context
type TxManager struct {
	db     *DB
	logger *zap.Logger
}

// NewTransactionManager creates a TxManager over db
func NewTransactionManager(db *DB, logger *zap.Logger) repositories.TransactionManager {
	return &TxManager{db: db, logger: logger}
}

// InTransaction implements repositories.TransactionManager
func (m *TxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	if outer, ok := txFromContext(ctx); ok {
		return fn(ctx, outer)
	}

	sqlTx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := &Tx{tx: sqlTx}
	start := time.Now()

	if err := fn(context.WithValue(ctx, txKey{}, tx), tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.logger.Error("failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("cause", err),
			)
		} else {
			m.logger.Debug("transaction rolled back",
				zap.NamedError("cause", err),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	m.logger.Debug("transaction committed", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Tx is the postgres repositories.Transaction
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback is a no-op on a transaction that already finished
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

// querier is the query surface shared by *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// conn returns the transaction carried by ctx, or the pool when there is none
func conn(ctx context.Context, db *DB) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx.tx
	}
	return db.DB
}
