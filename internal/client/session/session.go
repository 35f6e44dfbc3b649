package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shopfront/internal/client/kvstore"
	"github.com/dmitrijs2005/shopfront/internal/client/models"
	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/dmitrijs2005/shopfront/internal/logging"
	"golang.org/x/sync/singleflight"
)

// WhoAmI resolves the current credential to an identity.
type WhoAmI interface {
	Me(ctx context.Context) (models.User, error)
}

// Authenticator exchanges user credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
	LoginWithGoogle(ctx context.Context, token string) (models.LoginResult, error)
}

type Store struct {
	kv     kvstore.Store
	users  WhoAmI
	auth   Authenticator
	logger logging.Logger

	mu         sync.RWMutex
	user       *models.User
	credential string
	ready      bool

	init singleflight.Group
}

func New(kv kvstore.Store, users WhoAmI, auth Authenticator, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{kv: kv, users: users, auth: auth, logger: logger.With("component", "session")}
}

// SetSession records identity and credential and persists the credential.
// The credential is not inspected. If persisting fails the in-memory state
// is left as it was.
func (s *Store) SetSession(ctx context.Context, user models.User, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ctx, user, credential)
}

// setLocked persists then assigns; callers hold s.mu.
func (s *Store) setLocked(ctx context.Context, user models.User, credential string) error {
	if err := s.kv.Set(ctx, common.AccessTokenKey, credential); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	u := user
	s.user = &u
	s.credential = credential
	return nil
}

// ClearSession forgets identity and credential and removes the persisted
// credential. It is idempotent. Memory is cleared even if the removal fails.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.credential = ""

	if err := s.kv.Remove(ctx, common.AccessTokenKey); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}

// InitializeSession restores the session from the persisted credential.
//
// Without a persisted credential nothing is fetched and the session stays
// signed out. With one, the identity is re-fetched and the same credential
// is kept; any failure (transport, HTTP status, bad body) clears the session.
// It never returns an error. Concurrent calls share one run.
func (s *Store) InitializeSession(ctx context.Context) {
	_, _, _ = s.init.Do("init", func() (any, error) {
		s.initialize(ctx)
		return nil, nil
	})
}

func (s *Store) initialize(ctx context.Context) {
	defer s.markReady()

	credential, ok, err := s.kv.Get(ctx, common.AccessTokenKey)
	if err != nil {
		s.logger.Warn(ctx, "credential unreadable, starting signed out", "error", err)
		s.clearQuietly(ctx)
		return
	}
	if !ok {
		s.forget()
		return
	}
	if credential == "" {
		s.clearQuietly(ctx)
		return
	}

	user, err := s.users.Me(ctx)
	if err == nil && user == (models.User{}) {
		err = ErrEmptyIdentity
	}
	if err != nil {
		s.logger.Error(ctx, "failed to fetch user info", "error", err)
		s.clearQuietly(ctx)
		return
	}

	if err := s.SetSession(ctx, user, credential); err != nil {
		s.logger.Error(ctx, "failed to restore session", "error", err)
		s.clearQuietly(ctx)
		return
	}
	s.logger.Info(ctx, "session restored", "user_id", user.ID)
}

// RefreshUser re-fetches the identity for the credential already held and
// keeps the credential. Unlike InitializeSession it never signs out: on any
// failure the error is returned and the session is left as it was.
func (s *Store) RefreshUser(ctx context.Context) error {
	credential := s.Credential()
	if credential == "" {
		return ErrSignedOut
	}

	user, err := s.users.Me(ctx)
	if err != nil {
		return fmt.Errorf("refresh user: %w", err)
	}
	if user == (models.User{}) {
		return ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential != credential {
		return ErrSessionChanged
	}
	return s.setLocked(ctx, user, credential)
}

func (s *Store) clearQuietly(ctx context.Context) {
	if err := s.ClearSession(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear session", "error", err)
	}
}

func (s *Store) forget() {
	s.mu.Lock()
	s.user = nil
	s.credential = ""
	s.mu.Unlock()
}

func (s *Store) markReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// Login authenticates with email and password and starts a session.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}
	return s.start(ctx, res)
}

// LoginWithGoogle starts a session from a federated ID token.
func (s *Store) LoginWithGoogle(ctx context.Context, token string) (models.User, error) {
	res, err := s.auth.LoginWithGoogle(ctx, token)
	if err != nil {
		return models.User{}, fmt.Errorf("google login error: %w", err)
	}
	return s.start(ctx, res)
}

func (s *Store) start(ctx context.Context, res models.LoginResult) (models.User, error) {
	if res.AccessToken == "" {
		return models.User{}, ErrNoCredential
	}
	if err := s.SetSession(ctx, res.User, res.AccessToken); err != nil {
		return models.User{}, err
	}
	s.logger.Info(ctx, "signed in", "user_id", res.User.ID)
	return res.User, nil
}

// Logout ends the session.
func (s *Store) Logout(ctx context.Context) error {
	return s.ClearSession(ctx)
}

// IsAuthenticated is true iff both identity and credential are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.credential != ""
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Ready reports whether InitializeSession has completed at least once.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}
