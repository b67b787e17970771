package store

import (
	"context"
	"errors"

	redisv9 "github.com/redis/go-redis/v9"
	"weather-dashboard/internal/model"
)

// RedisStore keeps preferences in Redis: one set of cities per user plus a
// plain string key for the unit, whose SET is an atomic upsert. Intended for
// multi-user deployments where the CSV files' shared-file model is not enough.
type RedisStore struct {
	client *redisv9.Client
}

func NewRedisStore(client *redisv9.Client) *RedisStore {
	return &RedisStore{client: client}
}

func favoritesKey(user string) string { return "favorites:" + user }
func unitKey(user string) string      { return "unit:" + user }

func (s *RedisStore) Favorites(ctx context.Context, user string) ([]model.FavoriteEntry, error) {
	cities, err := s.client.SMembers(ctx, favoritesKey(user)).Result()
	if err != nil {
		return nil, err
	}
	favorites := make([]model.FavoriteEntry, 0, len(cities))
	for _, city := range cities {
		favorites = append(favorites, model.FavoriteEntry{User: user, City: city})
	}
	return favorites, nil
}

func (s *RedisStore) AddFavorite(ctx context.Context, user, city string) error {
	key := favoritesKey(user)

	exists, err := s.client.SIsMember(ctx, key, city).Result()
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateFavorite
	}

	count, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return err
	}
	if count >= MaxFavorites {
		return ErrFavoriteLimit
	}

	return s.client.SAdd(ctx, key, city).Err()
}

func (s *RedisStore) RemoveFavorite(ctx context.Context, user, city string) error {
	return s.client.SRem(ctx, favoritesKey(user), city).Err()
}

func (s *RedisStore) Unit(ctx context.Context, user string) (model.Unit, error) {
	val, err := s.client.Get(ctx, unitKey(user)).Result()
	if errors.Is(err, redisv9.Nil) {
		return "", ErrNoPreference
	}
	if err != nil {
		return "", err
	}
	return model.ParseUnit(val)
}

func (s *RedisStore) SaveUnit(ctx context.Context, user string, unit model.Unit) error {
	return s.client.Set(ctx, unitKey(user), string(unit), 0).Err()
}
