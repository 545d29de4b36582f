package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase はユーザーユースケースの公開インターフェースです。
type UseCase interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*CreateUserOutput, error)
}

// Service はユーザーに関するユースケースをまとめます。
// 状態は持たず、注入されたポート経由でのみ処理を行います。
type Service struct {
	repo      Repository
	publisher EventPublisher
	clock     Clock
	ids       IDGenerator
	tx        TransactionManager
	logger    *slog.Logger
}

var _ UseCase = (*Service)(nil)

// Option は Service の任意依存を差し替えます。
type Option func(*Service)

// WithClock は時刻の取得元を差し替えます。
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator は ID の採番方法を差し替えます。
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithTransactionManager はトランザクション境界を設定します。
func WithTransactionManager(tx TransactionManager) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithLogger はロガーを設定します。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, publisher EventPublisher, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		clock:     realClock{},
		ids:       uuidGenerator{},
		tx:        noopTransactionManager{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser は新しいユーザーを作成し、UserCreated イベントを発行します。
// 入力は NormalizeCreateUserInput で検証済みであることを前提とします。
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*CreateUserOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var created *User
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailNotExists(ctx, in.Email); err != nil {
			return err
		}

		u := NewUser(s.ids.NewID(), in.Email, in.Name, s.clock.Now())
		if err := s.repo.InsertIfAbsentByEmail(ctx, u); err != nil {
			if errors.Is(err, ErrEmailAlreadyExists) {
				return err
			}
			return fmt.Errorf("insert user: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", slog.String("user_id", created.ID))

	// 保存済みのユーザーはロールバックしない
	if err := s.publisher.PublishUserCreated(ctx, NewUserCreated(created)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event", EventNameUserCreated),
			slog.String("user_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	return &CreateUserOutput{UserID: created.ID}, nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	_, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find by email: %w", err)
	}
	if found {
		return ErrEmailAlreadyExists
	}
	return nil
}
