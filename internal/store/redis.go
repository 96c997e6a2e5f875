package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps each scenario as a JSON string and indexes ids in a sorted
// set scored by an insertion sequence.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
	now    clock
}

// OpenRedisStore connects to the server described by opts and verifies the
// connection.
func OpenRedisStore(ctx context.Context, logger *zap.Logger, opts Options) (*RedisStore, error) {
	addr := opts.RedisAddress
	if addr == "" {
		addr = constants.DefaultRedisAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	s := NewRedisStore(logger, client, opts.RedisPrefix)
	s.logger.Info("opened redis scenario store",
		zap.String("op", "store.OpenRedisStore"),
		zap.String("addr", addr),
		zap.String("prefix", s.prefix),
	)
	return s, nil
}

// NewRedisStore wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisStore(logger *zap.Logger, client *redis.Client, prefix string) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = constants.DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger, now: systemClock}
}

func (s *RedisStore) scenarioKey(id string) string {
	return s.prefix + ":scenario:" + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":scenarios"
}

func (s *RedisStore) sequenceKey() string {
	return s.prefix + ":seq"
}

// Insert writes the scenario and its index entry in one transaction.
func (s *RedisStore) Insert(ctx context.Context, scenario simulation.Scenario) (simulation.Scenario, error) {
	seq, err := s.client.Incr(ctx, s.sequenceKey()).Result()
	if err != nil {
		return simulation.Scenario{}, fmt.Errorf("failed to allocate scenario sequence: %w", err)
	}

	scenario.ID = newID()
	scenario.CreatedAt = s.now()

	data, err := json.Marshal(scenario)
	if err != nil {
		return simulation.Scenario{}, fmt.Errorf("failed to encode scenario: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.scenarioKey(scenario.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(seq), Member: scenario.ID})
		return nil
	})
	if err != nil {
		return simulation.Scenario{}, fmt.Errorf("failed to insert scenario: %w", err)
	}
	return scenario, nil
}

// List returns every indexed scenario newest first. Index entries whose
// scenario key has vanished are skipped.
func (s *RedisStore) List(ctx context.Context) ([]simulation.Scenario, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario ids: %w", err)
	}
	scenarios := make([]simulation.Scenario, 0, len(ids))
	if len(ids) == 0 {
		return scenarios, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.scenarioKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			s.logger.Warn("scenario index entry has no data",
				zap.String("op", "store.RedisStore.List"),
				zap.String("id", ids[i]),
			)
			continue
		}
		var scenario simulation.Scenario
		if err := json.Unmarshal([]byte(raw), &scenario); err != nil {
			return nil, fmt.Errorf("failed to decode scenario %s: %w", ids[i], err)
		}
		scenarios = append(scenarios, scenario)
	}

	sortNewestFirst(scenarios)
	return scenarios, nil
}

// Get loads one scenario.
func (s *RedisStore) Get(ctx context.Context, id string) (simulation.Scenario, error) {
	raw, err := s.client.Get(ctx, s.scenarioKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return simulation.Scenario{}, ErrNotFound
		}
		return simulation.Scenario{}, fmt.Errorf("failed to get scenario %s: %w", id, err)
	}

	var scenario simulation.Scenario
	if err := json.Unmarshal(raw, &scenario); err != nil {
		return simulation.Scenario{}, fmt.Errorf("failed to decode scenario %s: %w", id, err)
	}
	return scenario, nil
}

// Delete removes the scenario and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.scenarioKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	return nil
}

// Ping checks the server connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
