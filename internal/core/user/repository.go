package user

import "context"

// Repository はユーザーエンティティの永続化を行うインターフェースです。
// 検索系は該当なしをエラーではなく found=false で表現します。
type Repository interface {
	// Save は ID をキーにユーザーを保存します（存在すれば上書き）。
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, bool, error)
	// FindByEmail は挿入順で最初に一致したユーザーを返します。
	FindByEmail(ctx context.Context, email string) (*User, bool, error)
	// InsertIfAbsentByEmail は同じメールアドレスのユーザーが存在しない場合に限り保存します。
	// 存在する場合は ErrEmailAlreadyExists を返します。判定と保存は不可分に行われます。
	InsertIfAbsentByEmail(ctx context.Context, user *User) error
}
