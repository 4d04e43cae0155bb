package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier-filial/filial/internal/models"
)

type mockPlayerRepo struct {
	PlayerExistsFunc   func(ctx context.Context, email string) (bool, error)
	RegisterPlayerFunc func(ctx context.Context, email string) error
}

func (m *mockPlayerRepo) PlayerExists(ctx context.Context, email string) (bool, error) {
	return m.PlayerExistsFunc(ctx, email)
}
func (m *mockPlayerRepo) RegisterPlayer(ctx context.Context, email string) error {
	return m.RegisterPlayerFunc(ctx, email)
}

func TestPlayerExists_NormalizesEmail(t *testing.T) {
	repo := &mockPlayerRepo{
		PlayerExistsFunc: func(ctx context.Context, email string) (bool, error) {
			if email != "a@b.com" {
				t.Errorf("repo received email = %q; want normalized %q", email, "a@b.com")
			}
			return true, nil
		},
	}
	svc := NewPlayerService(repo)

	exists, err := svc.PlayerExists(context.Background(), "  A@B.COM ")
	if err != nil {
		t.Fatalf("PlayerExists returned error: %v", err)
	}
	if !exists {
		t.Errorf("PlayerExists = false; want true")
	}
}

func TestPlayerExists_InvalidEmail(t *testing.T) {
	svc := NewPlayerService(&mockPlayerRepo{
		PlayerExistsFunc: func(ctx context.Context, email string) (bool, error) {
			t.Errorf("repo called for an invalid email")
			return false, nil
		},
	})

	if _, err := svc.PlayerExists(context.Background(), "no-at-sign"); !errors.Is(err, models.ErrInvalidEmail) {
		t.Errorf("PlayerExists error = %v; want ErrInvalidEmail", err)
	}
}

func TestRegisterPlayer_ReturnsNormalized(t *testing.T) {
	called := false
	svc := NewPlayerService(&mockPlayerRepo{
		RegisterPlayerFunc: func(ctx context.Context, email string) error {
			called = true
			if email != "new@b.com" {
				t.Errorf("repo received email = %q; want %q", email, "new@b.com")
			}
			return nil
		},
	})

	got, err := svc.RegisterPlayer(context.Background(), "New@B.com")
	if err != nil {
		t.Fatalf("RegisterPlayer returned error: %v", err)
	}
	if got != "new@b.com" {
		t.Errorf("RegisterPlayer = %q; want %q", got, "new@b.com")
	}
	if !called {
		t.Errorf("repo was never called")
	}
}

func TestRegisterPlayer_RepoError(t *testing.T) {
	wantErr := errors.New("insert failed")
	svc := NewPlayerService(&mockPlayerRepo{
		RegisterPlayerFunc: func(ctx context.Context, email string) error { return wantErr },
	})

	if _, err := svc.RegisterPlayer(context.Background(), "a@b.com"); !errors.Is(err, wantErr) {
		t.Errorf("RegisterPlayer error = %v; want %v", err, wantErr)
	}
}
