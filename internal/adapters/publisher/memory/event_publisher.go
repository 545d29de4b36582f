package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ogurasousui/codex-minhex/internal/core/user"
)

// EventPublisher は発行されたイベントを順序どおりメモリに蓄積する user.EventPublisher の実装です。
// 配送保証はプロセスのメモリ内に限られます。
type EventPublisher struct {
	mu     sync.Mutex
	events []user.Event
	logger *slog.Logger
}

var _ user.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher は EventPublisher を生成します。logger が nil の場合は出力を破棄します。
func NewEventPublisher(logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &EventPublisher{logger: logger}
}

// Publish はイベントをログの末尾に追加します。
func (p *EventPublisher) Publish(ctx context.Context, event user.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "event published", slog.String("event", event.EventName()))
	return nil
}

// PublishUserCreated は UserCreated イベントを発行します。
func (p *EventPublisher) PublishUserCreated(ctx context.Context, event user.UserCreated) error {
	return p.Publish(ctx, event)
}

// GetEvents は発行済みイベントのスナップショットを返します。
func (p *EventPublisher) GetEvents() []user.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]user.Event, len(p.events))
	copy(out, p.events)
	return out
}

// ClearEvents は発行済みイベントを破棄します。テスト用です。
func (p *EventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}
