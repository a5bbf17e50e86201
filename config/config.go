package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultAPIURL       = "http://localhost:8080"
	defaultUserEmail    = "test@example.com"
	defaultPollInterval = 5 * time.Second
	defaultHTTPTimeout  = 12 * time.Second
	defaultLogLevel     = "info"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the client settings.
type Config struct {
	APIURL       string        `validate:"required,http_url"`
	UserEmail    string        `validate:"required,email"`
	PollInterval time.Duration `validate:"gt=0"`
	HTTPTimeout  time.Duration `validate:"gt=0"`
	LogLevel     string
}

// Load reads an optional .env file from the working directory and then
// the environment. Variables already set in the environment win over the
// file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only. It does not
// validate: callers apply their overrides first and then call Validate.
func FromEnv() (Config, error) {
	cfg := Config{
		APIURL:    getEnv("CINEMA_API_URL", defaultAPIURL),
		UserEmail: getEnv("CINEMA_USER_EMAIL", defaultUserEmail),
		LogLevel:  getEnv("LOG_LEVEL", defaultLogLevel),
	}

	var err error
	if cfg.PollInterval, err = getDuration("CINEMA_POLL_INTERVAL", defaultPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.HTTPTimeout, err = getDuration("CINEMA_HTTP_TIMEOUT", defaultHTTPTimeout); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("invalid %s %q: must satisfy %s", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag())
	}
	return err
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return d, nil
}
