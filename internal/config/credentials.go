package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = appName
	keyringUser    = "openai-api-key"

	// APIKeyEnv names the environment variable holding the AI key.
	APIKeyEnv = "OPENAI_API_KEY"
)

// DataDir returns the path to the data directory for the database and log.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/integral/
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	dataDir := filepath.Join(dataHome, appName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dataDir, nil
}

// LoadEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// APIKey retrieves the AI API key from available sources.
// Priority: 1. OPENAI_API_KEY env var, 2. System keyring, 3. Config file
func (c *Config) APIKey() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return strings.TrimSpace(key)
	}

	key, err := keyring.Get(keyringService, keyringUser)
	if err == nil && key != "" {
		return strings.TrimSpace(key)
	}

	return strings.TrimSpace(c.AI.APIKey)
}

// SaveAPIKey stores the key in the system keyring.
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store api key: %w", err)
	}
	return nil
}

// ClearAPIKey removes the key from the keyring. A missing key is not an error.
func ClearAPIKey() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove api key: %w", err)
	}
	return nil
}
