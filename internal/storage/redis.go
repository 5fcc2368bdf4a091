package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

// RedisStorage implements the Storage interface using Redis for session
// snapshots and the filesystem for the static world graph.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
// redisURL accepts the redis:// URL form.
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  redis.NewClient(opts),
		logger:  logger,
		dataDir: dataDir,
	}, nil
}

func sessionKey(slot int) string {
	return fmt.Sprintf("session:%d", slot)
}

func summaryKey(slot int) string {
	return fmt.Sprintf("summary:%d", slot)
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// SaveSession writes the full session snapshot. Saves are durable across
// process restarts, so no expiration is set.
func (r *RedisStorage) SaveSession(ctx context.Context, gs *state.SessionState) error {
	if gs == nil {
		return errors.New("session cannot be nil")
	}
	gs.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(gs.Slot), data, 0).Err(); err != nil {
		r.logger.Error("Failed to save session", "slot", gs.Slot, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Debug("Session saved", "slot", gs.Slot, "turn", gs.Turn)
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, slot int) (*state.SessionState, error) {
	data, err := r.client.Get(ctx, sessionKey(slot)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var gs state.SessionState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &gs, nil
}

func (r *RedisStorage) ListSlots(ctx context.Context, max int) ([]Slot, error) {
	slots := make([]Slot, 0, max)
	for n := 1; n <= max; n++ {
		gs, err := r.LoadSession(ctx, n)
		if err != nil {
			return nil, err
		}

		s := Slot{Number: n}
		if gs != nil {
			s.Occupied = true
			s.Label = fmt.Sprintf("%s, chapter %d, turn %d", gs.Profession, gs.Chapter, gs.Turn)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (r *RedisStorage) SaveSummary(ctx context.Context, slot int, summary string) error {
	if err := r.client.Set(ctx, summaryKey(slot), summary, 0).Err(); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSummary(ctx context.Context, slot int) (string, error) {
	summary, err := r.client.Get(ctx, summaryKey(slot)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load summary: %w", err)
	}
	return summary, nil
}

// LoadWorld reads the room graph from dataDir/world.yaml, falling back to
// the built-in facility map when no file is present.
func (r *RedisStorage) LoadWorld(ctx context.Context) (*world.World, error) {
	path := filepath.Join(r.dataDir, "world.yaml")
	w, err := world.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("No world file found, using built-in map", "path", path)
			return world.Default(), nil
		}
		return nil, fmt.Errorf("failed to load world: %w", err)
	}
	return w, nil
}
