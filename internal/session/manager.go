// Package session owns the authenticated identity of each browser session: it
// persists the token/identity pair, re-verifies it once on load and answers
// authorization queries for the route gate.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/models"
)

var (
	// ErrNoSession is returned when an operation needs an authenticated identity.
	ErrNoSession = errors.New("no active session")
	// ErrTokenExpired marks a persisted token whose exp claim already passed.
	ErrTokenExpired = errors.New("session token expired")
)

// Verifier confirms that a token is still accepted by the backend.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// ChangeKind names a session transition.
type ChangeKind string

const (
	ChangeLogin   ChangeKind = "login"
	ChangeLogout  ChangeKind = "logout"
	ChangeRevoked ChangeKind = "revoked"
)

// Change describes a transition of one browser session.
type Change struct {
	SessionID string      `json:"session_id"`
	Kind      ChangeKind  `json:"kind"`
	Role      models.Role `json:"role,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	At        time.Time   `json:"at"`
}

// Listener is notified after a transition has been applied.
type Listener interface {
	SessionChanged(ctx context.Context, change Change)
}

// State is a snapshot of a manager. Identity is set exactly when Token is set.
type State struct {
	Token    string
	Identity *models.Identity
	Loading  bool
}

// Authenticated reports whether an identity is present.
func (s State) Authenticated() bool {
	return s.Identity != nil
}

// Role returns the identity role or the empty role.
func (s State) Role() models.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// IsAdmin is derived from the identity on every call.
func (s State) IsAdmin() bool {
	return s.Identity != nil && s.Identity.Role == models.RoleAdmin
}

// IsStudent is derived from the identity on every call.
func (s State) IsStudent() bool {
	return s.Identity != nil && s.Identity.Role == models.RoleStudent
}

// Option customises a Manager.
type Option func(*Manager)

// WithListener registers a transition listener.
func WithListener(listener Listener) Option {
	return func(m *Manager) {
		m.listener = listener
	}
}

// WithClock overrides the time source used for expiry checks and events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithVerifyTimeout bounds the background verification call.
func WithVerifyTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.verifyTimeout = timeout
	}
}

// Manager holds the session of one browser. All methods are safe for concurrent use.
type Manager struct {
	id            string
	store         Store
	verifier      Verifier
	listener      Listener
	logger        zerolog.Logger
	now           func() time.Time
	verifyTimeout time.Duration

	// writeMu serialises store mutations so a late verification cannot clear
	// entries written by a newer login.
	writeMu sync.Mutex

	mu         sync.RWMutex
	token      string
	identity   *models.Identity
	loading    bool
	generation uint64
	ready      chan struct{}
	lastSeen   time.Time

	initOnce sync.Once
	initErr  error
}

// NewManager builds a manager for the browser session id. Call Initialize before use.
func NewManager(id string, store Store, verifier Verifier, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		id:       id,
		store:    store,
		verifier: verifier,
		logger:   logger.With().Str("component", "session_manager").Logger(),
		now:      time.Now,
		ready:    closedChannel(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSeen = m.now()
	return m
}

// ID returns the browser session id.
func (m *Manager) ID() string {
	return m.id
}

// Initialize loads the persisted pair. A complete pair becomes the optimistic
// session and is verified in the background; anything else leaves no session.
func (m *Manager) Initialize(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	entries, err := m.store.Load(ctx, m.id)
	if err != nil {
		m.reset()
		return fmt.Errorf("load session: %w", err)
	}
	if !entries.Complete() {
		m.reset()
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal(entries.User, &identity); err != nil || !identity.Role.Valid() {
		m.logger.Warn().Str("session_id", m.id).Msg("discarding unreadable persisted identity")
		if clearErr := m.store.Clear(ctx, m.id); clearErr != nil {
			m.logger.Error().Err(clearErr).Str("session_id", m.id).Msg("failed to clear unreadable session")
		}
		m.reset()
		return nil
	}

	m.mu.Lock()
	m.generation++
	generation := m.generation
	m.token = entries.Token
	m.identity = &identity
	m.loading = true
	m.ready = make(chan struct{})
	m.mu.Unlock()

	go m.verify(context.WithoutCancel(ctx), generation, entries.Token)
	return nil
}

func (m *Manager) ensureInitialized(ctx context.Context) error {
	m.initOnce.Do(func() {
		m.initErr = m.Initialize(ctx)
	})
	return m.initErr
}

func (m *Manager) verify(ctx context.Context, generation uint64, token string) {
	if m.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.verifyTimeout)
		defer cancel()
	}

	var err error
	if TokenExpired(token, m.now()) {
		err = ErrTokenExpired
	} else if m.verifier == nil {
		err = errors.New("no token verifier configured")
	} else {
		err = m.verifier.VerifyToken(ctx, token)
	}

	m.writeMu.Lock()
	m.mu.Lock()
	if m.generation != generation {
		m.mu.Unlock()
		m.writeMu.Unlock()
		m.logger.Debug().Str("session_id", m.id).Msg("dropping stale verification result")
		return
	}

	if err == nil {
		m.finishLoadingLocked()
		m.mu.Unlock()
		m.writeMu.Unlock()
		return
	}

	identity := m.identity
	m.generation++
	m.token = ""
	m.identity = nil
	m.finishLoadingLocked()
	m.mu.Unlock()

	if clearErr := m.store.Clear(ctx, m.id); clearErr != nil {
		m.logger.Error().Err(clearErr).Str("session_id", m.id).Msg("failed to clear revoked session")
	}
	m.writeMu.Unlock()

	m.logger.Info().Err(err).Str("session_id", m.id).Msg("persisted session rejected, logged out")
	m.emit(ctx, ChangeRevoked, identity)
}

// Login stores the pair durably and in memory, replacing any previous session.
// The in-memory session is established even when the store write fails.
func (m *Manager) Login(ctx context.Context, token string, identity models.Identity) error {
	if token == "" {
		return errors.New("login requires a token")
	}
	if !identity.Role.Valid() {
		return fmt.Errorf("login requires a known role, got %q", identity.Role)
	}

	user, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	m.writeMu.Lock()
	saveErr := m.store.Save(ctx, m.id, Entries{Token: token, User: user})

	m.mu.Lock()
	m.generation++
	m.token = token
	m.identity = &identity
	m.finishLoadingLocked()
	m.mu.Unlock()
	m.writeMu.Unlock()

	m.emit(ctx, ChangeLogin, &identity)

	if saveErr != nil {
		return fmt.Errorf("persist session: %w", saveErr)
	}
	return nil
}

// Logout clears the pair durably and in memory. It never fails; store errors
// are logged.
func (m *Manager) Logout(ctx context.Context) {
	m.writeMu.Lock()
	if err := m.store.Clear(ctx, m.id); err != nil {
		m.logger.Error().Err(err).Str("session_id", m.id).Msg("failed to clear session store on logout")
	}

	m.mu.Lock()
	identity := m.identity
	m.generation++
	m.token = ""
	m.identity = nil
	m.finishLoadingLocked()
	m.mu.Unlock()
	m.writeMu.Unlock()

	if identity != nil {
		m.emit(ctx, ChangeLogout, identity)
	}
}

// State returns a snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := State{Token: m.token, Loading: m.loading}
	if m.identity != nil {
		identity := *m.identity
		state.Identity = &identity
	}
	return state
}

// IsAdmin reports whether the current identity is an admin.
func (m *Manager) IsAdmin() bool {
	return m.State().IsAdmin()
}

// IsStudent reports whether the current identity is a student.
func (m *Manager) IsStudent() bool {
	return m.State().IsStudent()
}

// Credentials returns the token and identity, or ErrNoSession.
func (m *Manager) Credentials() (string, models.Identity, error) {
	state := m.State()
	if state.Identity == nil {
		return "", models.Identity{}, ErrNoSession
	}
	return state.Token, *state.Identity, nil
}

// Ready is closed once no verification is outstanding.
func (m *Manager) Ready() <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Await waits up to grace for an outstanding verification and returns the
// resulting state. A zero grace returns immediately.
func (m *Manager) Await(ctx context.Context, grace time.Duration) State {
	if grace <= 0 {
		return m.State()
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-m.Ready():
	case <-timer.C:
	case <-ctx.Done():
	}
	return m.State()
}

// Touch records activity for idle pruning.
func (m *Manager) Touch() {
	m.mu.Lock()
	m.lastSeen = m.now()
	m.mu.Unlock()
}

// LastSeen returns the time of the last recorded activity.
func (m *Manager) LastSeen() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSeen
}

func (m *Manager) reset() {
	m.mu.Lock()
	m.generation++
	m.token = ""
	m.identity = nil
	m.finishLoadingLocked()
	m.mu.Unlock()
}

func (m *Manager) finishLoadingLocked() {
	m.loading = false
	select {
	case <-m.ready:
	default:
		close(m.ready)
	}
}

func (m *Manager) emit(ctx context.Context, kind ChangeKind, identity *models.Identity) {
	if m.listener == nil {
		return
	}

	change := Change{SessionID: m.id, Kind: kind, At: m.now().UTC()}
	if identity != nil {
		change.Role = identity.Role
		change.UserID = identity.ID
	}
	m.listener.SessionChanged(ctx, change)
}

func closedChannel() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
