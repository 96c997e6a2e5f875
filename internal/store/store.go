// Package store persists simulation scenarios. Every back end assigns an
// opaque id and a creation timestamp on insert, lists newest first and treats
// deletion of an unknown id as success.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when no scenario has the requested id.
var ErrNotFound = errors.New("scenario not found")

// Store is the scenario persistence collaborator.
type Store interface {
	// Insert stores the scenario and returns it with ID and CreatedAt set.
	Insert(ctx context.Context, scenario simulation.Scenario) (simulation.Scenario, error)
	// List returns every scenario ordered by creation time, newest first.
	List(ctx context.Context) ([]simulation.Scenario, error)
	// Get returns one scenario or ErrNotFound.
	Get(ctx context.Context, id string) (simulation.Scenario, error)
	// Delete removes a scenario. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error
	// Ping checks that the back end is reachable.
	Ping(ctx context.Context) error
	// Close releases the back end's resources.
	Close() error
}

// Options selects and configures a back end.
type Options struct {
	Driver        string
	SQLitePath    string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open constructs the back end named by opts.Driver.
func Open(ctx context.Context, logger *zap.Logger, opts Options) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Driver {
	case "", constants.StorageDriverMemory:
		return NewMemoryStore(), nil
	case constants.StorageDriverSQLite:
		return OpenSQLiteStore(logger, opts.SQLitePath)
	case constants.StorageDriverRedis:
		return OpenRedisStore(ctx, logger, opts)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}

// clock is replaced in tests that need deterministic timestamps.
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func newID() string {
	return uuid.NewString()
}
