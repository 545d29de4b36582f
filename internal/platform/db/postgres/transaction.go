package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryer は pgx.Tx と pgxpool.Pool の共通部分です。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type txKey struct{}

// txBeginner は pgxpool.Pool と pgxmock が満たします。
type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TransactionManager は user.TransactionManager の pgx 実装です。
type TransactionManager struct {
	db   txBeginner
	opts pgx.TxOptions
}

// NewTransactionManager は読み書きトランザクションを開始する TransactionManager を返します。
// db が nil の場合は nil を返し、WithinReadWrite はトランザクションなしで fn を実行します。
func NewTransactionManager(db txBeginner) *TransactionManager {
	if db == nil {
		return nil
	}
	return &TransactionManager{db: db, opts: pgx.TxOptions{AccessMode: pgx.ReadWrite}}
}

// WithinReadWrite は fn をトランザクション内で実行します。
// fn がエラーを返すとロールバックし、成功すればコミットします。
// ctx が既にトランザクションを保持していれば新たに開始しません。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) (err error) {
	if fn == nil {
		return fmt.Errorf("postgres: transaction function is required")
	}
	if m == nil {
		return fn(ctx)
	}
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("postgres: rollback: %w", rbErr))
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	done = true
	return nil
}

// QueryerFromContext は ctx のトランザクション、なければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}
