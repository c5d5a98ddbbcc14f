package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/crmsession/api"
	"github.com/viant/crmsession/api/transport"
	"github.com/viant/crmsession/credential"
	"github.com/viant/crmsession/internal/collection"
	"github.com/viant/crmsession/logger"
	"github.com/viant/crmsession/storage"
)

const (
	commandLogin     = "login"
	commandRegister  = "register"
	commandLogout    = "logout"
	commandFetchUser = "fetchUser"
	commandSetToken  = "setToken"
)

// ErrInvalidResponse is returned when login or register succeeded without usable credential or identity
var ErrInvalidResponse = errors.New("invalid authentication response")

// Store holds process session and keeps persisted snapshot consistent with it
type Store struct {
	api     api.Authenticator
	storage storage.Storage
	logger  *slog.Logger
	metrics *Metrics

	mux       sync.RWMutex
	session   Session
	persistMu sync.Mutex
	startOnce sync.Once

	listeners   *collection.SyncMap[uint64, Listener]
	listenerSeq uint64
}

// Session returns a copy of current session
func (s *Store) Session() Session {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.session.clone()
}

// Login exchanges email and password for credential pair, API failure is returned unchanged
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, commandLogin, func(ctx context.Context) (*api.TokenResponse, error) {
		return s.api.Login(ctx, email, password)
	})
}

// Register creates account and authenticates with it, API failure is returned unchanged
func (s *Store) Register(ctx context.Context, email, password, fullName string) error {
	return s.authenticate(ctx, commandRegister, func(ctx context.Context) (*api.TokenResponse, error) {
		return s.api.Register(ctx, email, password, fullName)
	})
}

func (s *Store) authenticate(ctx context.Context, command string, call func(ctx context.Context) (*api.TokenResponse, error)) error {
	s.update(func(session *Session) {
		session.IsLoading = true
	})
	response, err := call(ctx)
	if err == nil {
		err = validateResponse(response)
	}
	if err != nil {
		s.update(func(session *Session) {
			session.IsLoading = false
		})
		s.metrics.observe(command, outcomeFailure)
		s.logger.Warn("authentication failed", logger.Command(command), logger.Error(err))
		return err
	}

	s.writeCredential(ctx, response.Pair())
	s.update(func(session *Session) {
		session.Identity = response.User.Clone()
		session.Credential = response.AccessToken
		session.IsAuthenticated = true
		session.IsLoading = false
	})
	s.persist(ctx)
	s.metrics.observe(command, outcomeSuccess)
	s.logger.Info("authenticated", logger.Command(command), slog.String("user", response.User.ID), slog.String("role", string(response.User.Role)))
	return nil
}

func validateResponse(response *api.TokenResponse) error {
	if response == nil {
		return fmt.Errorf("%w: response was empty", ErrInvalidResponse)
	}
	if response.AccessToken == "" {
		return fmt.Errorf("%w: access token was empty", ErrInvalidResponse)
	}
	if err := response.User.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// Logout clears session and removes stored credential pair, it can not fail
func (s *Store) Logout(ctx context.Context) {
	s.removeCredential(ctx)
	s.update(func(session *Session) {
		session.Identity = nil
		session.Credential = ""
		session.IsAuthenticated = false
	})
	s.persist(ctx)
	s.metrics.observe(commandLogout, outcomeSuccess)
	s.logger.Info("logged out")
}

// FetchUser verifies held credential and refreshes identity. Any failure,
// including transport errors, logs the session out. Without credential it is a no-op.
// The outcome is discarded when the credential changed while the call was in flight.
func (s *Store) FetchUser(ctx context.Context) {
	held := s.Session().Credential
	if held == "" {
		s.metrics.observe(commandFetchUser, outcomeNoop)
		return
	}
	user, err := s.api.Me(transport.WithCredential(ctx, held))
	if err == nil {
		err = user.Validate()
	}
	if err != nil {
		if !s.holds(held) {
			s.discardVerification(err)
			return
		}
		s.metrics.observe(commandFetchUser, outcomeFailure)
		s.logger.Warn("credential verification failed, logging out", logger.Command(commandFetchUser), logger.Error(err))
		s.Logout(ctx)
		return
	}
	applied := false
	s.update(func(session *Session) {
		if session.Credential != held {
			return
		}
		session.Identity = user.Clone()
		session.IsAuthenticated = true
		applied = true
	})
	if !applied {
		s.discardVerification(nil)
		return
	}
	s.persist(ctx)
	s.metrics.observe(commandFetchUser, outcomeSuccess)
	s.logger.Debug("credential verified", slog.String("user", user.ID))
}

func (s *Store) holds(token string) bool {
	return s.Session().Credential == token
}

func (s *Store) discardVerification(err error) {
	s.metrics.observe(commandFetchUser, outcomeNoop)
	s.logger.Debug("credential changed during verification, discarding result", logger.Command(commandFetchUser), logger.Error(err))
}

// SetToken adopts credential obtained out of band without verifying it;
// identity and authenticated flag are left as they are until FetchUser.
func (s *Store) SetToken(ctx context.Context, token string) {
	if err := s.storage.Set(ctx, credential.AccessTokenKey, token); err != nil {
		s.logger.Error("failed to store credential", logger.Command(commandSetToken), logger.Error(err))
	}
	s.update(func(session *Session) {
		session.Credential = token
	})
	s.persist(ctx)
	s.metrics.observe(commandSetToken, outcomeSuccess)
}

// Start verifies hydrated credential once per store, later calls are no-ops
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		if s.Session().Credential != "" {
			s.FetchUser(ctx)
		}
	})
}

func (s *Store) update(fn func(session *Session)) {
	s.mux.Lock()
	fn(&s.session)
	current := s.session.clone()
	s.mux.Unlock()
	s.metrics.setAuthenticated(current.IsAuthenticated)
	s.notify(current)
}

// persist mirrors current {credential, identity} to snapshot slot
func (s *Store) persist(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	encoded, err := NewSnapshot(s.Session()).Encode()
	if err == nil {
		err = s.storage.Set(ctx, credential.SnapshotKey, encoded)
	}
	if err != nil {
		s.logger.Error("failed to persist session snapshot", logger.Error(err))
	}
}

func (s *Store) writeCredential(ctx context.Context, pair *credential.Pair) {
	if err := s.storage.Set(ctx, credential.AccessTokenKey, pair.Access); err != nil {
		s.logger.Error("failed to store credential", logger.Error(err))
	}
	if err := s.storage.Set(ctx, credential.RefreshTokenKey, pair.Refresh); err != nil {
		s.logger.Error("failed to store refresh credential", logger.Error(err))
	}
}

func (s *Store) removeCredential(ctx context.Context) {
	for _, key := range []string{credential.AccessTokenKey, credential.RefreshTokenKey} {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.logger.Error("failed to remove credential", slog.String("key", key), logger.Error(err))
		}
	}
}

// hydrate seeds session from access token slot, then from snapshot when present
func (s *Store) hydrate(ctx context.Context) error {
	access, _, err := s.storage.Get(ctx, credential.AccessTokenKey)
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}
	hydrated := Session{Credential: access}
	encoded, ok, err := s.storage.Get(ctx, credential.SnapshotKey)
	if err != nil {
		return fmt.Errorf("failed to read session snapshot: %w", err)
	}
	if ok {
		snapshot, err := DecodeSnapshot(encoded)
		if err != nil {
			s.logger.Warn("ignoring session snapshot", logger.Error(err))
		} else {
			hydrated.Credential = snapshot.Credential
			hydrated.Identity = snapshot.Identity
		}
	}
	if hydrated.Credential == "" {
		hydrated.Identity = nil
	} else if hydrated.Credential != access {
		if err := s.storage.Set(ctx, credential.AccessTokenKey, hydrated.Credential); err != nil {
			s.logger.Warn("failed to reconcile credential slot", logger.Error(err))
		}
	}
	s.mux.Lock()
	s.session = hydrated
	s.mux.Unlock()
	s.logger.Debug("session hydrated", slog.String("state", hydrated.State().String()))
	return nil
}

// New creates a store hydrated from storage
func New(ctx context.Context, authenticator api.Authenticator, store storage.Storage, options ...Option) (*Store, error) {
	ret := &Store{
		api:       authenticator,
		storage:   store,
		logger:    logger.Discard(),
		listeners: collection.NewSyncMap[uint64, Listener](),
	}
	for _, opt := range options {
		opt(ret)
	}
	if err := ret.hydrate(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}
