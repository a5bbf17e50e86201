package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinemahall-cli/model"
)

const (
	appDir         = "cinemahall-cli"
	movieCacheTTL  = 10 * time.Minute
	maxBookings    = 20
	bookingHistory = "bookings.json"
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

type bookingLog struct {
	Bookings []model.Booking `json:"bookings"`
}

// LoadMovieCache returns the cached movie list and whether it is still fresh.
func LoadMovieCache(baseURL string) ([]model.Movie, bool, error) {
	path, err := cachePath(movieCacheName(baseURL))
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Movie](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= movieCacheTTL, nil
}

func SaveMovieCache(baseURL string, movies []model.Movie) error {
	path, err := cachePath(movieCacheName(baseURL))
	if err != nil {
		return err
	}
	return saveCache(path, movies)
}

// LoadBookings returns the locally recorded bookings, newest first.
func LoadBookings() ([]model.Booking, error) {
	path, err := configPath(bookingHistory)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history bookingLog
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid booking history format")
	}
	return history.Bookings, nil
}

// RememberBooking records a confirmed booking. A booking code already in
// the history is moved to the front instead of duplicated.
func RememberBooking(booking model.Booking) error {
	if strings.TrimSpace(booking.Code) == "" {
		return errors.New("booking code is required")
	}
	history, _ := LoadBookings()
	next := []model.Booking{booking}
	for _, existing := range history {
		if existing.Code == booking.Code {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxBookings {
			break
		}
	}

	path, err := configPath(bookingHistory)
	if err != nil {
		return err
	}
	return writeJSON(path, bookingLog{Bookings: next})
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	return writeJSON(path, cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	})
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func movieCacheName(baseURL string) string {
	key := strings.ToLower(strings.TrimSpace(baseURL))
	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")
	key = strings.NewReplacer("/", "_", ":", "_", ".", "_").Replace(strings.Trim(key, "/"))
	if key == "" {
		key = "default"
	}
	return "movies_" + key + ".json"
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

// LogPath is where the application log lives.
func LogPath() (string, error) {
	return cachePath("cinemahall.log")
}
