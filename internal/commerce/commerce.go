// Package commerce implements the client-side shop records: cart, accounts,
// session, wishlist, orders and the per-account event scores. All records are
// JSON documents in the local storage.Store; reads normalize, writes are
// best-effort, and nothing here panics or surfaces storage failures.
package commerce

import (
	"errors"
	"time"

	"github.com/atelier-filial/filial/internal/models"
	"github.com/atelier-filial/filial/internal/storage"
)

// Storage keys. The V1 suffix guards against future record-shape changes.
const (
	cartKey     = "filialCartV1"
	accountsKey = "filialAccountsV1"
	sessionKey  = "filialSessionV1"
	gateKey     = "gatePassedSession"
)

func wishlistKey(email string) string { return "filialWishlist:" + email }
func ordersKey(email string) string   { return "filialOrders:" + email }
func joinedKey(email string) string   { return "filialEventJoined:" + email }
func bestKey(eventID, email string) string {
	return "filialEventBest:" + eventID + ":" + email
}

// Typed results for the degraded paths, so callers and tests can branch on
// them instead of inspecting sentinel values.
var (
	ErrLoginRequired = errors.New("login required")
	// ErrInvalidEmail aliases the shared validation error so callers can
	// keep matching against this package.
	ErrInvalidEmail      = models.ErrInvalidEmail
	ErrWeakPassword      = errors.New("password too short")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNoAccount         = errors.New("no account found")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrEmptyCart         = errors.New("cart is empty")
)

// MinPasswordLength matches the login form's minimum.
const MinPasswordLength = 6

// Account is a locally registered shopper.
//
// The password is stored and compared in plaintext. This is deliberate: the
// accounts feature is a local-only stand-in with no backend, and the remote
// leaderboard never sees it. Do not reuse this record against a real server.
type Account struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt int64  `json:"createdAt"`
}

// Session is the single active login, overwritten on login and removed on
// logout.
type Session struct {
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// Store provides durable, validated access to the shop records.
type Store struct {
	kv *storage.Store

	// Indicator, when set, receives the cart count after every cart
	// mutation so the UI can re-render its cart badges.
	Indicator func(count int)

	now func() time.Time
}

// NewStore wraps the given key/value store.
func NewStore(kv *storage.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// NormalizeEmail lowercases and trims an email address. It returns
// ErrInvalidEmail when the result does not look like an address.
func NormalizeEmail(raw string) (string, error) {
	return models.NormalizeEmail(raw)
}

func (s *Store) readAccounts() []Account {
	var accounts []Account
	s.kv.Get(accountsKey, &accounts)

	valid := accounts[:0]
	for _, a := range accounts {
		if email, err := NormalizeEmail(a.Email); err == nil {
			a.Email = email
			valid = append(valid, a)
		}
	}
	return valid
}

func (s *Store) writeAccounts(accounts []Account) {
	s.kv.Put(accountsKey, accounts)
}

// Session returns the active session, if any.
func (s *Store) Session() (Session, bool) {
	var sess Session
	if !s.kv.Get(sessionKey, &sess) {
		return Session{}, false
	}
	email, err := NormalizeEmail(sess.Email)
	if err != nil {
		return Session{}, false
	}
	sess.Email = email
	return sess, true
}

func (s *Store) writeSession(email string) Session {
	sess := Session{Email: email, CreatedAt: s.now().Unix()}
	s.kv.Put(sessionKey, sess)
	return sess
}

// LogOut removes the active session. Cart and wishlist records stay.
func (s *Store) LogOut() {
	s.kv.Delete(sessionKey)
}

// SignUp registers a new account and establishes a session for it.
func (s *Store) SignUp(rawEmail, password string) (Session, error) {
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return Session{}, err
	}
	if len(password) < MinPasswordLength {
		return Session{}, ErrWeakPassword
	}

	accounts := s.readAccounts()
	for _, a := range accounts {
		if a.Email == email {
			return Session{}, ErrAlreadyRegistered
		}
	}

	accounts = append(accounts, Account{
		Email:     email,
		Password:  password,
		CreatedAt: s.now().Unix(),
	})
	s.writeAccounts(accounts)
	return s.writeSession(email), nil
}

// LogIn checks credentials against the stored accounts and establishes a
// session on success.
func (s *Store) LogIn(rawEmail, password string) (Session, error) {
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return Session{}, err
	}

	for _, a := range s.readAccounts() {
		if a.Email != email {
			continue
		}
		if a.Password != password {
			return Session{}, ErrWrongPassword
		}
		return s.writeSession(email), nil
	}
	return Session{}, ErrNoAccount
}

// GatePassed reports whether the access gate was completed this session.
func (s *Store) GatePassed() bool {
	var passed bool
	return s.kv.GetVolatile(gateKey, &passed) && passed
}

// SetGatePassed marks the gate as completed. The flag is volatile and
// disappears when the process ends.
func (s *Store) SetGatePassed() {
	s.kv.PutVolatile(gateKey, true)
}
