package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const idPrefix = "user_"

// User はユーザーエンティティです。
// 生成後に変更されることはなく、アダプタは値のコピーを保持・返却します。
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// IDGenerator はユーザーIDを採番します。
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return idPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewUser は採番済みのIDと時刻からユーザーを組み立てます。
func NewUser(id, email, name string, createdAt time.Time) *User {
	return &User{
		ID:        id,
		Email:     email,
		Name:      name,
		CreatedAt: createdAt,
	}
}
