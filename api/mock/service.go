package mock

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/viant/crmsession/identity"
	"github.com/viant/crmsession/internal/collection"
)

const (
	// BasePath is the API prefix the fake is mounted under
	BasePath = "/api"

	naiveLayout = "2006-01-02T15:04:05.999999"
)

// User represents registered account
type User struct {
	ID        string
	Email     string
	Password  string
	FullName  string
	Role      identity.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns identity record of user
func (u *User) Identity() *identity.Identity {
	return &identity.Identity{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: identity.NewTimestamp(u.CreatedAt),
		UpdatedAt: identity.NewTimestamp(u.UpdatedAt),
	}
}

// AuthService is a test server that simulates the CRM authentication API
type AuthService struct {
	Secret       []byte
	Issuer       string
	ClientID     string
	ClientSecret string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	LoginHandler    func(w http.ResponseWriter, r *http.Request)
	RegisterHandler func(w http.ResponseWriter, r *http.Request)
	MeHandler       func(w http.ResponseWriter, r *http.Request)
	TokenHandler    func(w http.ResponseWriter, r *http.Request)

	users   *collection.SyncMap[string, *User]
	calls   *collection.SyncMap[string, *atomic.Int64]
	revoked *collection.SyncMap[string, bool]
}

type Option func(*AuthService)

// WithUser registers user
func WithUser(email, password, fullName string, role identity.Role) Option {
	return func(s *AuthService) {
		s.AddUser(email, password, fullName, role)
	}
}

// WithAccessTTL sets access credential lifetime
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *AuthService) {
		s.AccessTTL = ttl
	}
}

// AddUser registers user and returns it, existing user is returned for registered email
func (s *AuthService) AddUser(email, password, fullName string, role identity.Role) *User {
	user, _ := s.addUser(email, password, fullName, role)
	return user
}

func (s *AuthService) addUser(email, password, fullName string, role identity.Role) (*User, bool) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  password,
		FullName:  fullName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !s.users.PutIfAbsent(email, user) {
		existing, _ := s.users.Get(email)
		return existing, false
	}
	return user, true
}

// User returns registered user by email
func (s *AuthService) User(email string) (*User, bool) {
	return s.users.Get(email)
}

// UserCount returns number of registered accounts
func (s *AuthService) UserCount() int {
	return s.users.Len()
}

// Revoke makes access credential rejected by identity lookup
func (s *AuthService) Revoke(token string) {
	s.revoked.Put(token, true)
}

// Calls returns number of requests served by endpoint path, e.g. "/api/auth/me"
func (s *AuthService) Calls(path string) int {
	if counter, ok := s.calls.Get(path); ok {
		return int(counter.Load())
	}
	return 0
}

func (s *AuthService) count(path string) {
	counter, ok := s.calls.Get(path)
	if !ok {
		s.calls.PutIfAbsent(path, &atomic.Int64{})
		counter, _ = s.calls.Get(path)
	}
	counter.Add(1)
}

// Register registers HTTP handlers for all fake endpoints onto the given ServeMux.
func (s *AuthService) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Service: s})
}

// Handler returns an http.Handler for all fake endpoints
func (s *AuthService) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// NewAuthService creates a fake CRM authentication API
func NewAuthService(opts ...Option) *AuthService {
	service := &AuthService{
		Secret:       []byte(uuid.NewString()),
		Issuer:       "crm-mock",
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		AccessTTL:    30 * time.Minute,
		RefreshTTL:   7 * 24 * time.Hour,
		users:        collection.NewSyncMap[string, *User](),
		calls:        collection.NewSyncMap[string, *atomic.Int64](),
		revoked:      collection.NewSyncMap[string, bool](),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}
