package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by KV.Read when the key holds no value.
	ErrNotFound = errors.New("store: key not found")

	// ErrWatchUnsupported is returned by Watch on backends that cannot
	// observe writes made outside this process.
	ErrWatchUnsupported = errors.New("store: watch unsupported by backend")
)

// KV is the namespaced key/value collaborator the streak engine persists
// through. Keys are "<namespace>-<name>"; values are opaque bytes.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
}

// Watcher is implemented by backends that can report changes to a namespace.
type Watcher interface {
	Watch(ctx context.Context, namespace string) (<-chan Event, error)
}

// Event is emitted by Watch when a namespace changed on storage.
type Event struct {
	Namespace string
	Key       string
}

// Closer is implemented by backends holding OS resources.
type Closer interface {
	Close() error
}

const (
	DriverDiskv  = "diskv"
	DriverSQLite = "sqlite"
)

// Open creates the KV backend named by cfg. A nil cfg loads the configuration
// from viper.
func Open(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver())) {
	case "", DriverDiskv:
		return NewDiskv(cfg.BasePath()), nil
	case DriverSQLite:
		return OpenSQLite(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}

// Key joins a namespace and a name into a KV key.
func Key(namespace, name string) string {
	return fmt.Sprintf("%s-%s", namespace, name)
}
