package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ogurasousui/codex-minhex/internal/core/user"
)

func newUser(id, email string) *user.User {
	return user.NewUser(id, email, "User "+id, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, newUser("user_1", "test@example.com")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	found, ok, err := repo.FindByID(ctx, "user_1")
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%t err=%v", ok, err)
	}
	if found.Email != "test@example.com" {
		t.Errorf("unexpected email %s", found.Email)
	}

	byEmail, ok, err := repo.FindByEmail(ctx, "test@example.com")
	if err != nil || !ok {
		t.Fatalf("FindByEmail: ok=%t err=%v", ok, err)
	}
	if byEmail.ID != "user_1" {
		t.Errorf("unexpected id %s", byEmail.ID)
	}
}

func TestUserRepository_FindMissingIsNotAnError(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	u, ok, err := repo.FindByEmail(ctx, "nobody@x.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok || u != nil {
		t.Fatalf("expected absence, got %+v", u)
	}

	if _, ok, err := repo.FindByID(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected absence without error, ok=%t err=%v", ok, err)
	}
}

func TestUserRepository_SaveIsUpsertByID(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	_ = repo.Save(ctx, newUser("user_1", "a@example.com"))
	_ = repo.Save(ctx, newUser("user_1", "b@example.com"))

	if repo.Len() != 1 {
		t.Fatalf("expected 1 user, got %d", repo.Len())
	}
	if _, ok, _ := repo.FindByEmail(ctx, "a@example.com"); ok {
		t.Fatal("expected old email to be replaced")
	}
}

func TestUserRepository_FindByEmailReturnsFirstInserted(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	for _, id := range []string{"user_b", "user_a", "user_c"} {
		if err := repo.Save(ctx, newUser(id, "same@example.com")); err != nil {
			t.Fatalf("Save returned error: %v", err)
		}
	}

	u, ok, _ := repo.FindByEmail(ctx, "same@example.com")
	if !ok || u.ID != "user_b" {
		t.Fatalf("expected first inserted user_b, got %+v", u)
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	original := newUser("user_1", "test@example.com")
	_ = repo.Save(ctx, original)
	original.Name = "mutated"

	found, _, _ := repo.FindByID(ctx, "user_1")
	found.Email = "changed@example.com"

	again, _, _ := repo.FindByID(ctx, "user_1")
	if again.Name == "mutated" || again.Email == "changed@example.com" {
		t.Fatalf("stored user was mutated: %+v", again)
	}
}

func TestUserRepository_InsertIfAbsentByEmail(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	if err := repo.InsertIfAbsentByEmail(ctx, newUser("user_1", "dup@example.com")); err != nil {
		t.Fatalf("first insert returned error: %v", err)
	}

	err := repo.InsertIfAbsentByEmail(ctx, newUser("user_2", "dup@example.com"))
	if !errors.Is(err, user.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	if repo.Len() != 1 {
		t.Fatalf("expected 1 user, got %d", repo.Len())
	}
}

func TestUserRepository_InsertIfAbsentByEmail_Concurrent(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.InsertIfAbsentByEmail(ctx, newUser(fmt.Sprintf("user_%d", i), "race@example.com"))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one successful insert, got %d", successes)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 stored user, got %d", repo.Len())
	}
}

func TestUserRepository_Clear(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx := context.Background()

	_ = repo.Save(ctx, newUser("user_1", "test@example.com"))
	repo.Clear()

	if _, ok, _ := repo.FindByEmail(ctx, "test@example.com"); ok {
		t.Fatal("expected empty repository after Clear")
	}
	if _, ok, _ := repo.FindByID(ctx, "user_1"); ok {
		t.Fatal("expected empty repository after Clear")
	}
}

func TestUserRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Save(ctx, newUser("user_1", "test@example.com")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatal("expected nothing stored for canceled context")
	}
}
