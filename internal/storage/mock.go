package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[int]*state.SessionState
	summaries map[int]string
	world     *world.World
	pingError error

	SaveSessionErr error
	SaveCount      int
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions:  make(map[int]*state.SessionState),
		summaries: make(map[int]string),
		world:     world.Default(),
	}
}

// SetWorld overrides the world returned by LoadWorld
func (m *MockStorage) SetWorld(w *world.World) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.world = w
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSession(ctx context.Context, gs *state.SessionState) error {
	if gs == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCount++
	if m.SaveSessionErr != nil {
		return m.SaveSessionErr
	}
	cp := *gs
	m.sessions[gs.Slot] = &cp
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, slot int) (*state.SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.sessions[slot]
	if !ok {
		return nil, nil
	}
	cp := *gs
	return &cp, nil
}

func (m *MockStorage) ListSlots(ctx context.Context, max int) ([]Slot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	slots := make([]Slot, 0, max)
	for n := 1; n <= max; n++ {
		s := Slot{Number: n}
		if gs, ok := m.sessions[n]; ok {
			s.Occupied = true
			s.Label = fmt.Sprintf("%s, chapter %d, turn %d", gs.Profession, gs.Chapter, gs.Turn)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (m *MockStorage) SaveSummary(ctx context.Context, slot int, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[slot] = summary
	return nil
}

func (m *MockStorage) LoadSummary(ctx context.Context, slot int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summaries[slot], nil
}

func (m *MockStorage) LoadWorld(ctx context.Context) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.world, nil
}
