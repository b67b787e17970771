package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"weather-dashboard/internal/model"
	"weather-dashboard/internal/store"
)

// ErrUnknownToken is returned for operations on a token with no live session.
var ErrUnknownToken = errors.New("unknown session token")

// Session is the explicit per-login context: the user's identity plus a
// snapshot of their persisted unit and favorites. It replaces ambient
// global state; it is created at login and dropped at logout.
type Session struct {
	Token     string     `json:"token"`
	User      string     `json:"user"`
	Unit      model.Unit `json:"unit"`
	Favorites []string   `json:"favorites"`
	CreatedAt time.Time  `json:"created_at"`
}

// Manager owns all live sessions, keyed by token.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	prefs    store.PreferenceStore
}

func NewManager(prefs store.PreferenceStore) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		prefs:    prefs,
	}
}

// snapshot loads a user's persisted unit (fahrenheit when none is stored)
// and favorite cities.
func (m *Manager) snapshot(ctx context.Context, user string) (model.Unit, []string, error) {
	unit, err := m.prefs.Unit(ctx, user)
	if errors.Is(err, store.ErrNoPreference) {
		unit = model.UnitFahrenheit
	} else if err != nil {
		return "", nil, err
	}

	favorites, err := m.prefs.Favorites(ctx, user)
	if err != nil {
		return "", nil, err
	}
	cities := make([]string, 0, len(favorites))
	for _, f := range favorites {
		cities = append(cities, f.City)
	}
	return unit, cities, nil
}

// Start creates a session for a user.
func (m *Manager) Start(ctx context.Context, user string) (*Session, error) {
	unit, cities, err := m.snapshot(ctx, user)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Token:     uuid.NewString(),
		User:      user,
		Unit:      unit,
		Favorites: cities,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the live session for a token.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Refresh reloads the unit and favorites snapshot from the store after a
// preference mutation.
func (m *Manager) Refresh(ctx context.Context, token string) error {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return ErrUnknownToken
	}

	unit, cities, err := m.snapshot(ctx, s.User)
	if err != nil {
		return err
	}

	m.mu.Lock()
	s.Unit = unit
	s.Favorites = cities
	m.mu.Unlock()
	return nil
}

// End clears a session. Ending an unknown token is a no-op.
func (m *Manager) End(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
