package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/raphi011/brewlog/internal/api"
	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/log"
)

// ErrNotAuthenticated is returned when a command needs a logged-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the session lifecycle state.
type State int

const (
	StateBootstrapping State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Reason explains why a session ended.
type Reason string

const (
	ReasonTokenExpired Reason = "token-expired"
	ReasonManual       Reason = "manual"
)

// Client is the part of the API the session needs.
type Client interface {
	Me(ctx context.Context) (*brew.User, error)
	Login(ctx context.Context, req brew.LoginRequest) (*brew.AuthResult, error)
	Register(ctx context.Context, req brew.RegisterRequest) (*brew.User, error)
}

// Cache is cleared when a session ends.
type Cache interface {
	Clear()
}

// Notifier tells the user their session expired.
type Notifier interface {
	SessionExpired()
}

// Navigator sends the user to the login entry point.
type Navigator interface {
	RedirectToLogin()
}

// Manager coordinates session bootstrap, login and logout.
type Manager struct {
	store    Store
	client   Client
	cache    Cache
	notifier Notifier
	nav      Navigator

	mu         sync.Mutex
	state      State
	token      string
	user       *brew.User
	loggingOut bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithCache sets the cache cleared on logout.
func WithCache(c Cache) Option {
	return func(m *Manager) { m.cache = c }
}

// WithNotifier sets who is told about expired sessions.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithNavigator sets where logouts redirect to.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

// NewManager creates a manager in the bootstrapping state. The client is
// usually set later with SetClient, since the client itself needs the
// manager as its token source.
func NewManager(store Store, client Client, opts ...Option) *Manager {
	m := &Manager{store: store, client: client, state: StateBootstrapping}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetClient sets the API client.
func (m *Manager) SetClient(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = c
}

// Bootstrap restores the stored session. It migrates a legacy token,
// then validates the token by fetching the profile. A 401 ends the session
// with an expiry notice; any other failure leaves the user anonymous and
// keeps the token for the next attempt.
func (m *Manager) Bootstrap(ctx context.Context) (State, error) {
	l := log.FromContext(ctx)

	m.mu.Lock()
	m.state = StateBootstrapping
	client := m.client
	m.mu.Unlock()

	if migrated, err := MigrateLegacyToken(m.store); err != nil {
		l.Debug("token migration failed", "err", err)
	} else if migrated {
		l.Debug("migrated legacy token", "from", LegacyTokenKey, "to", TokenKey)
	}

	token, ok, err := m.store.Get(TokenKey)
	if err != nil {
		m.setAnonymous()
		return StateAnonymous, fmt.Errorf("read token: %w", err)
	}
	if !ok || token == "" {
		m.setAnonymous()
		return StateAnonymous, nil
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	user, err := client.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			m.ForceLogout(ctx, ReasonTokenExpired)
			return StateAnonymous, nil
		}
		m.setAnonymous()
		return StateAnonymous, fmt.Errorf("validate session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != token {
		// logged out while the profile was in flight
		m.state = StateAnonymous
		return m.state, nil
	}
	m.user = user
	m.state = StateAuthenticated
	m.loggingOut = false
	return m.state, nil
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAnonymous
	m.user = nil
}

// Login authenticates with email and password and stores the token.
func (m *Manager) Login(ctx context.Context, email, password string) (*brew.User, error) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	res, err := client.Login(ctx, brew.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("login response carried no token")
	}

	if err := m.store.Set(TokenKey, res.Token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	if err := m.store.Remove(LegacyTokenKey); err != nil {
		log.FromContext(ctx).Debug("remove legacy token failed", "err", err)
	}

	user := res.User
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = res.Token
	m.user = &user
	m.state = StateAuthenticated
	m.loggingOut = false
	return &user, nil
}

// Register creates an account and logs in with it.
func (m *Manager) Register(ctx context.Context, req brew.RegisterRequest) (*brew.User, error) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if _, err := client.Register(ctx, req); err != nil {
		return nil, err
	}
	return m.Login(ctx, req.Email, req.Password)
}

// ForceLogout ends the session. Only the first call after a login acts;
// it reports whether this call did.
func (m *Manager) ForceLogout(ctx context.Context, reason Reason) bool {
	acted, err := m.forceLogout(reason)
	if err != nil {
		log.FromContext(ctx).Debug("clear stored token failed", "err", err)
	}
	return acted
}

// Logout ends the session without an expiry notice.
func (m *Manager) Logout(ctx context.Context) error {
	_, err := m.forceLogout(ReasonManual)
	return err
}

func (m *Manager) forceLogout(reason Reason) (bool, error) {
	m.mu.Lock()
	if m.loggingOut {
		m.mu.Unlock()
		return false, nil
	}
	m.loggingOut = true
	m.token = ""
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	err := m.store.Remove(TokenKey, LegacyTokenKey)
	if m.cache != nil {
		m.cache.Clear()
	}
	if reason == ReasonTokenExpired && m.notifier != nil {
		m.notifier.SessionExpired()
	}
	if m.nav != nil {
		m.nav.RedirectToLogin()
	}
	return true, err
}

// HandleUnauthorized ends the session after a 401 from the service.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	m.ForceLogout(ctx, ReasonTokenExpired)
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the authenticated user, or nil.
func (m *Manager) User() *brew.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a validated session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// RequireUser returns the user of an authenticated session or
// ErrNotAuthenticated.
func (m *Manager) RequireUser() (*brew.User, error) {
	if u := m.User(); u != nil && m.IsAuthenticated() {
		return u, nil
	}
	return nil, ErrNotAuthenticated
}

// Token returns the current token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// TokenExpiry decodes the exp claim of the current token.
func (m *Manager) TokenExpiry() (time.Time, error) {
	token := m.Token()
	if token == "" {
		return time.Time{}, ErrNotAuthenticated
	}
	return ParseExpiry(token)
}
