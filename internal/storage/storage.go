package storage

import (
	"context"

	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

// Slot describes one save slot in the slot listing.
type Slot struct {
	Number   int
	Occupied bool
	// Label is a short description of the saved session, empty when free.
	Label string
}

// Storage defines the interface for session persistence and static
// world data.
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	// SaveSession saves a session snapshot under its slot
	SaveSession(ctx context.Context, gs *state.SessionState) error

	// LoadSession retrieves a session by slot number.
	// Returns nil without error when the slot is empty.
	LoadSession(ctx context.Context, slot int) (*state.SessionState, error)

	// ListSlots reports slots 1..max and whether each is occupied
	ListSlots(ctx context.Context, max int) ([]Slot, error)

	// SaveSummary stores the end-of-run summary for a slot
	SaveSummary(ctx context.Context, slot int, summary string) error

	// LoadSummary retrieves a stored summary, empty string when none
	LoadSummary(ctx context.Context, slot int) (string, error)

	// LoadWorld loads the static room graph
	LoadWorld(ctx context.Context) (*world.World, error)
}
