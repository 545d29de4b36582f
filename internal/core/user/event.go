package user

import "time"

// EventNameUserCreated は UserCreated イベントの名前です。
const EventNameUserCreated = "user.created"

// Event はドメインイベントを表します。
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// UserCreated はユーザーが作成されたことを表すイベントです。
type UserCreated struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserCreated は保存済みのユーザーからイベントのスナップショットを生成します。
func NewUserCreated(u *User) UserCreated {
	return UserCreated{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// EventName implements Event.
func (UserCreated) EventName() string {
	return EventNameUserCreated
}

// OccurredAt implements Event.
func (e UserCreated) OccurredAt() time.Time {
	return e.CreatedAt
}
