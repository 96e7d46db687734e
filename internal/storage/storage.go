// Package storage persists the workspace collections as named JSON entries
// in a local key/value file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Named entries. Each collection is rewritten in full on every mutation.
const (
	KeyEvents = "integral_events"
	KeyTasks  = "integral_tasks"
	KeyUser   = "integral_user"
	KeyUsers  = "integral_users"
)

// SchemaVersion is written into every Envelope.
const SchemaVersion = 1

// ErrNotFound is returned by Backend.Get for an absent key.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a flat key/value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Envelope wraps a persisted value with its schema version.
type Envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Save encodes v into a versioned envelope and writes it under key.
func Save(b Backend, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	payload, err := json.Marshal(Envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode %s envelope: %w", key, err)
	}
	if err := b.Put(key, payload); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Load reads key into dst. It returns the schema version found on disk;
// bare values written without an envelope are reported as version 0.
// An absent key yields ErrNotFound.
func Load(b Backend, key string, dst any) (int, error) {
	raw, err := b.Get(key)
	if err != nil {
		return 0, err
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 && len(env.Data) > 0 {
		if env.Version > SchemaVersion {
			return env.Version, fmt.Errorf("%s: unsupported schema version %d", key, env.Version)
		}
		if err := json.Unmarshal(env.Data, dst); err != nil {
			return env.Version, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		return env.Version, nil
	}

	// Legacy layout: the collection itself, no envelope.
	if err := json.Unmarshal(raw, dst); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return 0, nil
}
