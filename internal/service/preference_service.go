package service

import (
	"context"
	"errors"
	"strings"

	"weather-dashboard/internal/model"
	"weather-dashboard/internal/store"
)

// ErrEmptyField is returned when a user or city value is missing or blank.
var ErrEmptyField = errors.New("user and city must not be empty")

// PreferenceServiceInterface defines the interface for user preference access
type PreferenceServiceInterface interface {
	Favorites(ctx context.Context, user string) ([]model.FavoriteEntry, error)
	AddFavorite(ctx context.Context, user, city string) error
	RemoveFavorite(ctx context.Context, user, city string) error
	Unit(ctx context.Context, user string) (model.Unit, error)
	SaveUnit(ctx context.Context, user string, unit model.Unit) error
}

// PreferenceService wraps the preference store with input normalization.
type PreferenceService struct {
	Store store.PreferenceStore
}

func NewPreferenceService(s store.PreferenceStore) *PreferenceService {
	return &PreferenceService{Store: s}
}

func (p *PreferenceService) Favorites(ctx context.Context, user string) ([]model.FavoriteEntry, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrEmptyField
	}
	return p.Store.Favorites(ctx, user)
}

func (p *PreferenceService) AddFavorite(ctx context.Context, user, city string) error {
	user, city = strings.TrimSpace(user), strings.TrimSpace(city)
	if user == "" || city == "" {
		return ErrEmptyField
	}
	return p.Store.AddFavorite(ctx, user, city)
}

func (p *PreferenceService) RemoveFavorite(ctx context.Context, user, city string) error {
	user, city = strings.TrimSpace(user), strings.TrimSpace(city)
	if user == "" || city == "" {
		return ErrEmptyField
	}
	return p.Store.RemoveFavorite(ctx, user, city)
}

func (p *PreferenceService) Unit(ctx context.Context, user string) (model.Unit, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", ErrEmptyField
	}
	return p.Store.Unit(ctx, user)
}

func (p *PreferenceService) SaveUnit(ctx context.Context, user string, unit model.Unit) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return ErrEmptyField
	}
	return p.Store.SaveUnit(ctx, user, unit)
}
