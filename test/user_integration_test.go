//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	pubmem "github.com/ogurasousui/codex-minhex/internal/adapters/publisher/memory"
	repo "github.com/ogurasousui/codex-minhex/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"github.com/ogurasousui/codex-minhex/internal/platform/config"
	pg "github.com/ogurasousui/codex-minhex/internal/platform/db/postgres"
)

const migrationsDir = "../assets/migrations"

func TestCreateUserIntegration(t *testing.T) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "../assets/local.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	userRepo := repo.NewUserRepository(pool)
	pub := pubmem.NewEventPublisher(nil)
	svc := user.NewService(userRepo, pub,
		user.WithClock(stubClock{now: time.Now().UTC()}),
		user.WithTransactionManager(pg.NewTransactionManager(pool)),
	)

	out, err := svc.CreateUser(ctx, user.CreateUserInput{Email: "integration@example.com", Name: "Integration"})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	found, ok, err := userRepo.FindByID(ctx, out.UserID)
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%t err=%v", ok, err)
	}
	if found.Email != "integration@example.com" {
		t.Fatalf("unexpected email %s", found.Email)
	}

	if _, err := svc.CreateUser(ctx, user.CreateUserInput{Email: "integration@example.com", Name: "Other"}); !errors.Is(err, user.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	if len(pub.GetEvents()) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.GetEvents()))
	}

	if err := userRepo.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok, err := userRepo.FindByID(ctx, out.UserID); err != nil || ok {
		t.Fatalf("expected user to be gone after Clear, ok=%t err=%v", ok, err)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
