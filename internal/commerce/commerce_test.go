package commerce

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atelier-filial/filial/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(storage.New(filepath.Join(t.TempDir(), "store.json"), nil))
}

func TestSignUp_CreatesSession(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.SignUp("Shopper@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if sess.Email != "shopper@example.com" {
		t.Errorf("session email = %q; want normalized %q", sess.Email, "shopper@example.com")
	}

	got, ok := s.Session()
	if !ok || got.Email != "shopper@example.com" {
		t.Errorf("Session = %+v, %v; want active session", got, ok)
	}
}

func TestSignUp_InvalidEmail(t *testing.T) {
	s := newTestStore(t)

	for _, email := range []string{"", "no-at-sign", "@leading", "trailing@"} {
		if _, err := s.SignUp(email, "secret1"); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("SignUp(%q) error = %v; want ErrInvalidEmail", email, err)
		}
	}
}

func TestSignUp_WeakPassword(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SignUp("a@b.com", "12345"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("SignUp error = %v; want ErrWeakPassword", err)
	}
	if _, ok := s.Session(); ok {
		t.Errorf("failed sign-up established a session")
	}
}

func TestSignUp_AlreadyRegistered(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SignUp("a@b.com", "secret1"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	// Same address in a different case is the same account.
	if _, err := s.SignUp("A@B.COM", "other-pass"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("second SignUp error = %v; want ErrAlreadyRegistered", err)
	}
}

func TestLogIn_Success(t *testing.T) {
	s := newTestStore(t)
	s.SignUp("a@b.com", "secret1")
	s.LogOut()

	sess, err := s.LogIn("A@b.com", "secret1")
	if err != nil {
		t.Fatalf("LogIn returned error: %v", err)
	}
	if sess.Email != "a@b.com" {
		t.Errorf("session email = %q; want %q", sess.Email, "a@b.com")
	}
}

func TestLogIn_WrongPassword(t *testing.T) {
	s := newTestStore(t)
	s.SignUp("a@b.com", "secret1")
	s.LogOut()

	if _, err := s.LogIn("a@b.com", "wrong!!"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("LogIn error = %v; want ErrWrongPassword", err)
	}
	if _, ok := s.Session(); ok {
		t.Errorf("failed login established a session")
	}
}

func TestLogIn_NoAccount(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LogIn("ghost@b.com", "secret1"); !errors.Is(err, ErrNoAccount) {
		t.Errorf("LogIn error = %v; want ErrNoAccount", err)
	}
}

func TestLogOut_KeepsCart(t *testing.T) {
	s := newTestStore(t)
	s.SignUp("a@b.com", "secret1")
	s.AddCartItem(CartItem{Key: "sweater", Price: 70})

	s.LogOut()

	if _, ok := s.Session(); ok {
		t.Fatalf("Session after LogOut = true; want false")
	}
	if got := len(s.Cart()); got != 1 {
		t.Errorf("cart length after logout = %d; want 1", got)
	}
}

func TestGatePassed_DefaultsFalse(t *testing.T) {
	s := newTestStore(t)
	if s.GatePassed() {
		t.Errorf("GatePassed on fresh store = true; want false")
	}

	s.SetGatePassed()
	if !s.GatePassed() {
		t.Errorf("GatePassed after SetGatePassed = false; want true")
	}
}

func TestGatePassed_NotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	first := NewStore(storage.New(path, nil))
	first.SetGatePassed()
	first.SignUp("a@b.com", "secret1") // force a durable write

	second := NewStore(storage.New(path, nil))
	if second.GatePassed() {
		t.Errorf("gate flag survived a restart; want session-scoped")
	}
	if _, ok := second.Session(); !ok {
		t.Errorf("durable session did not survive the restart")
	}
}
