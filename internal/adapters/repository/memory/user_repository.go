package memory

import (
	"context"
	"sync"

	"github.com/ogurasousui/codex-minhex/internal/core/user"
)

// UserRepository はメモリ上でユーザーを保持する user.Repository の実装です。
// ストア全体を単一のロックで保護します。
type UserRepository struct {
	mu    sync.Mutex
	users map[string]user.User
	order []string
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository は空の UserRepository を生成します。
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// Save は ID をキーにユーザーを保存します。
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(u)
	return nil
}

// FindByID は ID でユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

// FindByEmail は挿入順に走査し、最初に一致したユーザーを返します。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.findByEmail(email)
	return u, ok, nil
}

// InsertIfAbsentByEmail はメールアドレスの重複判定と保存を同一ロック内で行います。
func (r *UserRepository) InsertIfAbsentByEmail(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findByEmail(u.Email); ok {
		return user.ErrEmailAlreadyExists
	}
	r.put(u)
	return nil
}

// Clear は全ユーザーを削除します。テスト用です。
func (r *UserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]user.User)
	r.order = nil
}

// Len は保持しているユーザー数を返します。
func (r *UserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}

func (r *UserRepository) put(u *user.User) {
	if _, exists := r.users[u.ID]; !exists {
		r.order = append(r.order, u.ID)
	}
	r.users[u.ID] = *u
}

func (r *UserRepository) findByEmail(email string) (*user.User, bool) {
	for _, id := range r.order {
		u := r.users[id]
		if u.Email == email {
			return &u, true
		}
	}
	return nil, false
}
