// Package dataclient is the thin data-access layer over the hosted database.
// Every driver exposes the same filtered select/insert/update/delete calls and
// reports failures as *Error, with CodeNoRows marking a single-row call that
// matched nothing.
package dataclient

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/joaobosco/lembretes/internal/config"
)

// Query selects rows of Table whose columns equal the values in Where.
// Columns is the projection (or the RETURNING list for updates). Where
// columns listed in Fold compare case-insensitively.
type Query struct {
	Table   string
	Columns []string
	Where   map[string]interface{}
	Fold    []string
	OrderBy string
	Desc    bool
}

func (q Query) folds(column string) bool {
	for _, c := range q.Fold {
		if c == column {
			return true
		}
	}
	return false
}

type Client interface {
	// Select decodes all matching rows into dest, a pointer to a slice.
	Select(ctx context.Context, q Query, dest interface{}) error
	// SelectOne decodes exactly one row into dest.
	SelectOne(ctx context.Context, q Query, dest interface{}) error
	Insert(ctx context.Context, table string, values map[string]interface{}, returning []string, dest interface{}) error
	// Update applies values to the rows matched by q and decodes the single
	// updated row into dest.
	Update(ctx context.Context, q Query, values map[string]interface{}, dest interface{}) error
	// Delete returns the exact number of rows removed.
	Delete(ctx context.Context, table string, where map[string]interface{}) (int64, error)
	Close() error
}

type Factory func(ctx context.Context, cfg config.DatabaseConfig) (Client, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(ctx context.Context, cfg config.DatabaseConfig) (Client, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if key == "" {
		return nil, fmt.Errorf("database.driver is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	return factory(ctx, cfg)
}
