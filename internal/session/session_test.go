package session

import (
	"context"
	"testing"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/store"
)

// Mock preference store for testing
type mockPreferenceStore struct {
	units     map[string]model.Unit
	favorites map[string][]string
}

func newMockPreferenceStore() *mockPreferenceStore {
	return &mockPreferenceStore{
		units:     make(map[string]model.Unit),
		favorites: make(map[string][]string),
	}
}

func (m *mockPreferenceStore) Favorites(_ context.Context, user string) ([]model.FavoriteEntry, error) {
	entries := make([]model.FavoriteEntry, 0, len(m.favorites[user]))
	for _, city := range m.favorites[user] {
		entries = append(entries, model.FavoriteEntry{User: user, City: city})
	}
	return entries, nil
}

func (m *mockPreferenceStore) AddFavorite(_ context.Context, user, city string) error {
	m.favorites[user] = append(m.favorites[user], city)
	return nil
}

func (m *mockPreferenceStore) RemoveFavorite(_ context.Context, user, city string) error {
	kept := m.favorites[user][:0]
	for _, c := range m.favorites[user] {
		if c != city {
			kept = append(kept, c)
		}
	}
	m.favorites[user] = kept
	return nil
}

func (m *mockPreferenceStore) Unit(_ context.Context, user string) (model.Unit, error) {
	if unit, ok := m.units[user]; ok {
		return unit, nil
	}
	return "", store.ErrNoPreference
}

func (m *mockPreferenceStore) SaveUnit(_ context.Context, user string, unit model.Unit) error {
	m.units[user] = unit
	return nil
}

var _ store.PreferenceStore = (*mockPreferenceStore)(nil)

func TestManager_StartDefaultsToFahrenheit(t *testing.T) {
	manager := NewManager(newMockPreferenceStore())

	s, err := manager.Start(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.Token == "" {
		t.Error("Expected a session token")
	}
	if s.Unit != model.UnitFahrenheit {
		t.Errorf("Expected fahrenheit default, got %v", s.Unit)
	}
	if len(s.Favorites) != 0 {
		t.Errorf("Expected no favorites, got %v", s.Favorites)
	}
}

func TestManager_StartLoadsPersistedState(t *testing.T) {
	prefs := newMockPreferenceStore()
	ctx := context.Background()
	_ = prefs.SaveUnit(ctx, "a@x.com", model.UnitCelsius)
	_ = prefs.AddFavorite(ctx, "a@x.com", "Paris")
	_ = prefs.AddFavorite(ctx, "a@x.com", "Rome")

	manager := NewManager(prefs)
	s, err := manager.Start(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.Unit != model.UnitCelsius {
		t.Errorf("Expected celsius, got %v", s.Unit)
	}
	if len(s.Favorites) != 2 {
		t.Errorf("Expected 2 favorites, got %v", s.Favorites)
	}
}

func TestManager_GetAndEnd(t *testing.T) {
	manager := NewManager(newMockPreferenceStore())
	ctx := context.Background()

	s, _ := manager.Start(ctx, "a@x.com")
	got, ok := manager.Get(s.Token)
	if !ok || got.User != "a@x.com" {
		t.Fatalf("Expected live session for token, got ok=%v", ok)
	}

	manager.End(s.Token)
	if _, ok := manager.Get(s.Token); ok {
		t.Error("Expected session to be cleared after End")
	}

	// Ending twice is a no-op.
	manager.End(s.Token)
}

func TestManager_Refresh(t *testing.T) {
	prefs := newMockPreferenceStore()
	manager := NewManager(prefs)
	ctx := context.Background()

	s, _ := manager.Start(ctx, "a@x.com")
	_ = prefs.AddFavorite(ctx, "a@x.com", "Tokyo")
	_ = prefs.SaveUnit(ctx, "a@x.com", model.UnitCelsius)

	if err := manager.Refresh(ctx, s.Token); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	got, _ := manager.Get(s.Token)
	if got.Unit != model.UnitCelsius {
		t.Errorf("Expected refreshed unit celsius, got %v", got.Unit)
	}
	if len(got.Favorites) != 1 || got.Favorites[0] != "Tokyo" {
		t.Errorf("Expected refreshed favorites [Tokyo], got %v", got.Favorites)
	}

	if err := manager.Refresh(ctx, "no-such-token"); err == nil {
		t.Error("Expected error for unknown token")
	}
}
