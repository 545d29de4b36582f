package user

import "context"

// EventPublisher はドメインイベントを発行するインターフェースです。
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	PublishUserCreated(ctx context.Context, event UserCreated) error
}
