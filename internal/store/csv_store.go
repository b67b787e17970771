package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"weather-dashboard/internal/model"
)

const (
	favoritesFile = "favorites.csv"
	settingsFile  = "settings.csv"
)

// CSVStore persists preferences as flat CSV files (favorites.csv with
// user,city rows and settings.csv with user,unit rows). Every mutation is a
// whole-file read and rewrite; the mutex makes the store the single writer,
// so concurrent requests cannot lose updates.
type CSVStore struct {
	mu  sync.Mutex
	dir string
}

// NewCSVStore opens (creating if necessary) the CSV files under dir.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &CSVStore{dir: dir}
	for file, header := range map[string][]string{
		favoritesFile: {"user", "city"},
		settingsFile:  {"user", "unit"},
	} {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := writeRows(path, header, nil); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// readRows loads all data rows of a CSV file, skipping the header.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

// writeRows rewrites a CSV file through a temp file and rename, so a crash
// mid-write never leaves a truncated file behind.
func writeRows(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".csv-*")
	if err != nil {
		return err
	}
	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *CSVStore) Favorites(_ context.Context, user string) ([]model.FavoriteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readRows(filepath.Join(s.dir, favoritesFile))
	if err != nil {
		return nil, err
	}
	var favorites []model.FavoriteEntry
	for _, row := range rows {
		if len(row) < 2 || row[0] != user {
			continue
		}
		favorites = append(favorites, model.FavoriteEntry{User: row[0], City: row[1]})
	}
	return favorites, nil
}

func (s *CSVStore) AddFavorite(_ context.Context, user, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, favoritesFile)
	rows, err := readRows(path)
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		if len(row) < 2 || row[0] != user {
			continue
		}
		if row[1] == city {
			return ErrDuplicateFavorite
		}
		count++
	}
	if count >= MaxFavorites {
		return ErrFavoriteLimit
	}

	rows = append(rows, []string{user, city})
	return writeRows(path, []string{"user", "city"}, rows)
}

func (s *CSVStore) RemoveFavorite(_ context.Context, user, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, favoritesFile)
	rows, err := readRows(path)
	if err != nil {
		return err
	}

	kept := rows[:0]
	for _, row := range rows {
		if len(row) >= 2 && row[0] == user && row[1] == city {
			continue
		}
		kept = append(kept, row)
	}
	return writeRows(path, []string{"user", "city"}, kept)
}

func (s *CSVStore) Unit(_ context.Context, user string) (model.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readRows(filepath.Join(s.dir, settingsFile))
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if len(row) >= 2 && row[0] == user {
			return model.ParseUnit(row[1])
		}
	}
	return "", ErrNoPreference
}

func (s *CSVStore) SaveUnit(_ context.Context, user string, unit model.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, settingsFile)
	rows, err := readRows(path)
	if err != nil {
		return err
	}

	updated := false
	for i, row := range rows {
		if len(row) >= 2 && row[0] == user {
			rows[i][1] = string(unit)
			updated = true
			break
		}
	}
	if !updated {
		rows = append(rows, []string{user, string(unit)})
	}
	return writeRows(path, []string{"user", "unit"}, rows)
}
