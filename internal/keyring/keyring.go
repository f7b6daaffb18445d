// Package keyring keeps secrets (the PostgreSQL connection string and the
// insight API key) in the OS keyring instead of on the command line.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/alog/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the requested entry
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names one secret slot under the application's keyring service.
type Entry string

const (
	ConnectionString Entry = constants.DefaultKeyringUser
	APIKey           Entry = constants.APIKeyKeyringUser
)

func (e Entry) String() string {
	switch e {
	case ConnectionString:
		return "connection string"
	case APIKey:
		return "API key"
	default:
		return string(e)
	}
}

// Get returns the secret stored for e.
func Get(e Entry) (string, error) {
	secret, err := keyring.Get(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for e, replacing any previous value.
func Set(e Entry, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", e)
	}
	if err := keyring.Set(constants.AppName, string(e), secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", e, err)
	}
	return nil
}

// Delete removes the secret stored for e.
func Delete(e Entry) error {
	if err := keyring.Delete(constants.AppName, string(e)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", e, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
func GetConnectionString() (string, error) {
	return Get(ConnectionString)
}

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error {
	return Set(ConnectionString, connStr)
}

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error {
	return Delete(ConnectionString)
}

// GetAPIKey retrieves the insight API key.
func GetAPIKey() (string, error) {
	return Get(APIKey)
}

// SetAPIKey stores the insight API key.
func SetAPIKey(key string) error {
	return Set(APIKey, key)
}

// IsAvailable is a best-effort check that the OS keyring answers reads.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
