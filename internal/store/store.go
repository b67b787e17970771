package store

import (
	"context"
	"errors"

	"weather-dashboard/internal/model"
)

// MaxFavorites is the per-user favorite city cap.
const MaxFavorites = 5

// Custom error types
var (
	ErrFavoriteLimit     = errors.New("favorite limit reached")
	ErrDuplicateFavorite = errors.New("city already saved")
	ErrNoPreference      = errors.New("no unit preference saved")
)

// PreferenceStore persists per-user favorites and unit preference.
// Mutations go through explicit add/remove/save operations only.
type PreferenceStore interface {
	// Favorites returns the saved cities for a user, in insertion order.
	Favorites(ctx context.Context, user string) ([]model.FavoriteEntry, error)
	// AddFavorite appends a city for a user. It returns ErrDuplicateFavorite
	// if the city is already saved and ErrFavoriteLimit if the user already
	// holds MaxFavorites cities.
	AddFavorite(ctx context.Context, user, city string) error
	// RemoveFavorite deletes every matching (user, city) row.
	RemoveFavorite(ctx context.Context, user, city string) error
	// Unit returns a user's saved unit, or ErrNoPreference if none exists.
	Unit(ctx context.Context, user string) (model.Unit, error)
	// SaveUnit upserts the unit preference for a user.
	SaveUnit(ctx context.Context, user string, unit model.Unit) error
}
