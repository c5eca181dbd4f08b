package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultStorageKey is where the serialized session lives.
	DefaultStorageKey = "nw-auth-token"

	// initializeRefreshLead is the expiry margin that triggers a refresh
	// while restoring a persisted session.
	initializeRefreshLead = 5 * time.Minute
	// ensureRefreshLead is the wider margin used before write operations.
	ensureRefreshLead = 10 * time.Minute

	// refreshThrottle suppresses a second refresh right after a successful
	// one (foreground event plus timer firing together).
	refreshThrottle = 2 * time.Second

	defaultAutoRefreshInterval = time.Minute
)

// State is the snapshot handed to auth-state listeners.
type State struct {
	Session *Session
	Profile *Profile
	Loading bool
}

// ManagerConfig configures a Manager. Client is required.
type ManagerConfig struct {
	Client     *Client
	Storage    Storage
	StorageKey string
	Logger     zerolog.Logger
	// AutoRefresh keeps the session fresh in the background.
	AutoRefresh bool
	// AutoRefreshInterval defaults to one minute.
	AutoRefreshInterval time.Duration
}

// Manager owns the session, user and profile state. Every mutation runs
// on a single goroutine fed by a command channel, so sign-in, refresh,
// sign-out and the background refresher can never interleave writes.
//
// Listener callbacks run on that same goroutine and must not call back
// into the Manager.
type Manager struct {
	client     *Client
	storage    Storage
	storageKey string
	log        zerolog.Logger
	now        func() time.Time

	ops  chan func()
	quit chan struct{}

	// Owned by the run loop.
	session     *Session
	profile     *Profile
	loading     bool
	lastRefresh time.Time
	listeners   map[int]func(State)
	listenerSeq int

	loadedOnce sync.Once
	closeOnce  sync.Once
}

// NewManager starts the manager's run loop. Call Close when done.
func NewManager(cfg ManagerConfig) *Manager {
	storage := cfg.Storage
	if storage == nil {
		storage = NewMemoryStorage()
	}
	key := cfg.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}

	m := &Manager{
		client:     cfg.Client,
		storage:    storage,
		storageKey: key,
		log:        cfg.Logger,
		now:        time.Now,
		ops:        make(chan func()),
		quit:       make(chan struct{}),
		loading:    true,
		listeners:  make(map[int]func(State)),
	}
	go m.run()

	if cfg.AutoRefresh {
		interval := cfg.AutoRefreshInterval
		if interval <= 0 {
			interval = defaultAutoRefreshInterval
		}
		go m.autoRefresh(interval)
	}

	return m
}

func (m *Manager) run() {
	for {
		select {
		case op := <-m.ops:
			op()
		case <-m.quit:
			return
		}
	}
}

// call runs fn on the manager goroutine and waits for it to finish.
func (m *Manager) call(fn func()) {
	done := make(chan struct{})
	op := func() {
		fn()
		close(done)
	}
	select {
	case m.ops <- op:
		<-done
	case <-m.quit:
	}
}

// Close stops the run loop and the background refresher.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.quit) })
}

// Initialize restores a persisted session, refreshing it when it is close
// to expiry, and loads the profile. Loading is marked complete exactly
// once no matter which path runs, including profile-load failures.
func (m *Manager) Initialize(ctx context.Context) {
	m.call(func() {
		defer m.markLoaded()

		raw, ok := m.storage.Get(m.storageKey)
		if !ok {
			return
		}

		var s Session
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			m.log.Warn().Err(err).Msg("discarding unreadable persisted session")
			m.storage.Remove(m.storageKey)
			return
		}
		m.session = &s

		if s.ExpiresWithin(m.now(), initializeRefreshLead) {
			if err := m.refresh(ctx); err != nil {
				if IsKind(err, KindAuthExpired) {
					m.clear()
					return
				}
				m.log.Warn().Err(err).Msg("session refresh failed during restore")
				if m.session.Expired(m.now()) {
					m.clear()
					return
				}
			}
		}

		m.loadProfile(ctx)
		m.notify()
	})
}

// markLoaded flips loading to false and notifies, at most once.
func (m *Manager) markLoaded() {
	m.loadedOnce.Do(func() {
		m.loading = false
		m.notify()
	})
}

// SignIn authenticates and mirrors the result into state. The profile
// arrives with the sign-in response, so it is set before this returns.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	var outErr error
	m.call(func() {
		s, profile, err := m.client.SignIn(ctx, email, password)
		if err != nil {
			outErr = err
			return
		}
		m.session = s
		m.profile = profile
		if m.profile == nil {
			m.loadProfile(ctx)
		}
		m.lastRefresh = m.now()
		m.persist()
		m.notify()
	})
	return outErr
}

// SignUp creates an account. It does not touch the current session.
func (m *Manager) SignUp(ctx context.Context, input SignUpInput) (*Profile, error) {
	return m.client.SignUp(ctx, input)
}

// SignOut revokes the session server side and clears all local state.
// Local state is cleared even when the backend call fails; the error is
// returned for logging only.
func (m *Manager) SignOut(ctx context.Context) error {
	var outErr error
	m.call(func() {
		if m.session != nil {
			if err := m.client.SignOut(ctx, m.session.RefreshToken); err != nil {
				m.log.Warn().Err(err).Msg("server sign-out failed")
				outErr = err
			}
		}
		m.clear()
		m.notify()
	})
	return outErr
}

// RefreshSession forces a token refresh. State is cleared only when the
// failure is a credential failure; transient errors leave it untouched.
func (m *Manager) RefreshSession(ctx context.Context) error {
	var outErr error
	m.call(func() {
		outErr = m.refresh(ctx)
		if outErr != nil && IsKind(outErr, KindAuthExpired) {
			m.clear()
			m.notify()
		}
	})
	return outErr
}

// EnsureValidSession returns a session fit for an immediate write call,
// refreshing first when expiry is near. When the refresh fails but the
// current session has not actually expired yet, the stale session is
// returned rather than failing the caller.
func (m *Manager) EnsureValidSession(ctx context.Context) (*Session, error) {
	var (
		out    *Session
		outErr error
	)
	m.call(func() {
		if m.session == nil {
			outErr = &Error{Kind: KindAuthExpired, Message: "no active session"}
			return
		}
		if !m.session.ExpiresWithin(m.now(), ensureRefreshLead) {
			out = m.snapshotSession()
			return
		}

		if err := m.refresh(ctx); err != nil {
			if !m.session.Expired(m.now()) {
				m.log.Warn().Err(err).Msg("refresh failed, using unexpired session")
				out = m.snapshotSession()
				return
			}
			if IsKind(err, KindAuthExpired) {
				m.clear()
				m.notify()
			}
			outErr = err
			return
		}
		out = m.snapshotSession()
	})
	return out, outErr
}

// CreateUserAsAdmin creates another account with the caller's privileged
// token. The caller's own session is never replaced or re-issued.
func (m *Manager) CreateUserAsAdmin(ctx context.Context, input SignUpInput) (*Profile, error) {
	var accessToken string
	m.call(func() {
		if m.session != nil {
			accessToken = m.session.AccessToken
		}
	})
	if accessToken == "" {
		return nil, &Error{Kind: KindAuthExpired, Message: "no active session"}
	}
	return m.client.AdminCreateUser(ctx, accessToken, input)
}

// RefreshProfile reloads the profile for the current session.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	var outErr error
	m.call(func() {
		if m.session == nil {
			outErr = &Error{Kind: KindAuthExpired, Message: "no active session"}
			return
		}
		profile, err := m.client.Profile(ctx, m.session.AccessToken)
		if err != nil {
			outErr = err
			return
		}
		m.profile = profile
		m.notify()
	})
	return outErr
}

// OnAuthStateChange registers a listener invoked after every state
// change. The returned function unsubscribes it.
func (m *Manager) OnAuthStateChange(fn func(State)) (unsubscribe func()) {
	var id int
	m.call(func() {
		m.listenerSeq++
		id = m.listenerSeq
		m.listeners[id] = fn
	})
	return func() {
		m.call(func() {
			delete(m.listeners, id)
		})
	}
}

// Session returns the current session, or nil when signed out.
func (m *Manager) Session() *Session {
	var out *Session
	m.call(func() { out = m.snapshotSession() })
	return out
}

// Profile returns the current profile, or nil.
func (m *Manager) Profile() *Profile {
	var out *Profile
	m.call(func() {
		if m.profile != nil {
			p := *m.profile
			out = &p
		}
	})
	return out
}

// IsLoading reports whether Initialize has completed.
func (m *Manager) IsLoading() bool {
	var out bool
	m.call(func() { out = m.loading })
	return out
}

// --- run-loop internals, only called from the manager goroutine ---

func (m *Manager) refresh(ctx context.Context) error {
	if m.session == nil {
		return &Error{Kind: KindAuthExpired, Message: "no active session"}
	}
	if m.now().Sub(m.lastRefresh) < refreshThrottle {
		return nil
	}

	s, err := m.client.Refresh(ctx, m.session.RefreshToken)
	if err != nil {
		return err
	}
	m.session = s
	m.lastRefresh = m.now()
	m.persist()
	m.notify()
	return nil
}

func (m *Manager) loadProfile(ctx context.Context) {
	if m.session == nil {
		m.profile = nil
		return
	}
	profile, err := m.client.Profile(ctx, m.session.AccessToken)
	if err != nil {
		m.log.Warn().Err(err).Msg("profile load failed")
		m.profile = nil
		return
	}
	m.profile = profile
}

func (m *Manager) persist() {
	raw, err := json.Marshal(m.session)
	if err != nil {
		m.log.Warn().Err(err).Msg("session encode failed")
		return
	}
	m.storage.Set(m.storageKey, string(raw))
}

// clear wipes session, profile and every persisted auth key.
func (m *Manager) clear() {
	m.session = nil
	m.profile = nil
	m.storage.Remove(m.storageKey)
	RemovePrefix(m.storage, m.storageKey+".")
}

func (m *Manager) snapshotSession() *Session {
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

func (m *Manager) notify() {
	state := State{
		Session: m.snapshotSession(),
		Loading: m.loading,
	}
	if m.profile != nil {
		p := *m.profile
		state.Profile = &p
	}
	for _, fn := range m.listeners {
		fn(state)
	}
}

func (m *Manager) autoRefresh(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return
		case <-ticker.C:
			m.call(func() {
				if m.session == nil || !m.session.ExpiresWithin(m.now(), ensureRefreshLead) {
					return
				}
				if err := m.refresh(context.Background()); err != nil {
					if IsKind(err, KindAuthExpired) {
						m.clear()
						m.notify()
						return
					}
					m.log.Warn().Err(err).Msg("background refresh failed")
				}
			})
		}
	}
}
