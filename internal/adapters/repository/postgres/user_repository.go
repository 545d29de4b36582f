package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-minhex/internal/core/user"
	pgdb "github.com/ogurasousui/codex-minhex/internal/platform/db/postgres"
)

const uniqueViolationCode = "23505"

// UserRepository は PostgreSQL を利用したユーザー永続化の実装です。
type UserRepository struct {
	pool pgdb.Queryer
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(pool pgdb.Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save は ID をキーにユーザーを保存します。
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO users (id, email, name, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
           SET email = EXCLUDED.email,
               name = EXCLUDED.name
    `, u.ID, u.Email, u.Name, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", translatePgError(err))
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, email, name, created_at
          FROM users
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanOptionalUser(row)
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, email, name, created_at
          FROM users
         WHERE email = $1
         ORDER BY created_at, id
         LIMIT 1
    `, email)

	return scanOptionalUser(row)
}

// InsertIfAbsentByEmail は email の一意制約を利用して不可分に挿入します。
func (r *UserRepository) InsertIfAbsentByEmail(ctx context.Context, u *user.User) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        INSERT INTO users (id, email, name, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO NOTHING
    `, u.ID, u.Email, u.Name, u.CreatedAt)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrEmailAlreadyExists
	}
	return nil
}

// Clear は全ユーザーを削除します。テスト用です。
func (r *UserRepository) Clear(ctx context.Context) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

func scanOptionalUser(row pgx.Row) (*user.User, bool, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query user: %w", err)
	}
	return u, true, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id        string
		email     string
		name      string
		createdAt time.Time
	)

	if err := row.Scan(&id, &email, &name, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}

	return user.NewUser(id, email, name, createdAt), nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolationCode {
			return user.ErrEmailAlreadyExists
		}
	}
	return err
}
