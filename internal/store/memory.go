package store

import (
	"context"
	"sync"

	"github.com/iwvelando/invoice-roi/internal/simulation"
)

// MemoryStore keeps scenarios in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu        sync.RWMutex
	now       clock
	scenarios []simulation.Scenario // insertion order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: systemClock}
}

// Insert stores a copy of the scenario.
func (m *MemoryStore) Insert(ctx context.Context, scenario simulation.Scenario) (simulation.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return simulation.Scenario{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	scenario.ID = newID()
	scenario.CreatedAt = m.now()
	m.scenarios = append(m.scenarios, scenario)
	return scenario, nil
}

// List returns the scenarios newest first. Scenarios created at the same
// instant are ordered by reverse insertion.
func (m *MemoryStore) List(ctx context.Context) ([]simulation.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]simulation.Scenario, 0, len(m.scenarios))
	for i := len(m.scenarios) - 1; i >= 0; i-- {
		out = append(out, m.scenarios[i])
	}
	sortNewestFirst(out)
	return out, nil
}

// Get returns the scenario with the given id.
func (m *MemoryStore) Get(ctx context.Context, id string) (simulation.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return simulation.Scenario{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, scenario := range m.scenarios {
		if scenario.ID == id {
			return scenario, nil
		}
	}
	return simulation.Scenario{}, ErrNotFound
}

// Delete removes the scenario with the given id if present.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, scenario := range m.scenarios {
		if scenario.ID == id {
			m.scenarios = append(m.scenarios[:i], m.scenarios[i+1:]...)
			break
		}
	}
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
