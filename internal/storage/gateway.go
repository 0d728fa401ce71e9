package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownBackend = errors.New("storage: unknown backend")

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

const DefaultTheme = "light"

// Gateway persists the whole task snapshot and the theme preference.
// SaveTasks always overwrites the previously saved snapshot.
type Gateway interface {
	LoadTasks(ctx context.Context) ([]Record, error)
	SaveTasks(ctx context.Context, records []Record) error
	LoadTheme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, theme string) error
	Close() error
}

// Record is the serialized form of a task.
type Record struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Due       *string   `json:"due"`
	Priority  string    `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Open returns the gateway for the named backend. path is the database file
// for sqlite and the state file for json.
func Open(backend, path string) (Gateway, error) {
	switch backend {
	case BackendSQLite:
		gw, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case BackendJSON:
		return NewFileGateway(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
