package instrumented

import (
	"context"

	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EventPublisher は別の EventPublisher を包み、発行結果をメトリクスとして記録します。
type EventPublisher struct {
	next      user.EventPublisher
	published *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

var _ user.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher は next をラップし、カウンタを reg に登録します。
func NewEventPublisher(next user.EventPublisher, reg prometheus.Registerer) *EventPublisher {
	factory := promauto.With(reg)
	return &EventPublisher{
		next: next,
		published: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "minhex",
				Name:      "events_published_total",
				Help:      "Total number of domain events published successfully.",
			},
			[]string{"event"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "minhex",
				Name:      "events_publish_failures_total",
				Help:      "Total number of domain events that failed to publish.",
			},
			[]string{"event"},
		),
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event user.Event) error {
	return p.observe(event.EventName(), p.next.Publish(ctx, event))
}

func (p *EventPublisher) PublishUserCreated(ctx context.Context, event user.UserCreated) error {
	return p.observe(event.EventName(), p.next.PublishUserCreated(ctx, event))
}

func (p *EventPublisher) observe(name string, err error) error {
	if err != nil {
		p.failures.WithLabelValues(name).Inc()
		return err
	}
	p.published.WithLabelValues(name).Inc()
	return nil
}
