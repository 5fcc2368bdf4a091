package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profession is the player's background, chosen once at session start.
type Profession string

const (
	ProfessionHardware Profession = "hardware"
	ProfessionSoftware Profession = "software"
	ProfessionControl  Profession = "control"
	ProfessionDesign   Profession = "design"
)

// Professions lists the valid professions in menu order.
var Professions = []Profession{
	ProfessionHardware,
	ProfessionSoftware,
	ProfessionControl,
	ProfessionDesign,
}

// PartNames lists the four robot build modules in display order.
// The session is won when all four are complete.
var PartNames = []string{"power", "motor", "sensors", "control"}

const (
	DefaultHP          = 3
	DefaultDangerLevel = 10
)

// SessionState is the authoritative record of a survival session.
// It is the single source of truth for game-critical facts; the
// generator only ever proposes changes to it through sanitized hints.
//
// Location is mutated only by a confirmed legal movement commit
// (see turn.CommitMove), never by the applier or by generator hints.
type SessionState struct {
	ID   uuid.UUID `json:"id"`
	Slot int       `json:"slot"`

	// Log accumulates the turn-tagged narrative for end-of-run summarization.
	Log string `json:"log"`

	Turn     int    `json:"turn"`
	Chapter  int    `json:"chapter"`
	Location string `json:"location"`

	Profession Profession `json:"profession"`
	Level      int        `json:"level"`
	HP         int        `json:"hp"`

	KnowledgeScore int             `json:"knowledge_score"`
	RobotParts     map[string]bool `json:"robot_parts"`

	Flags     map[string]any `json:"flags,omitempty"`
	Inventory []string       `json:"inventory,omitempty"`

	// DangerLevel is clamped to [0,100] by the applier.
	DangerLevel int `json:"danger_level"`

	IsGameOver bool `json:"is_game_over"`
	IsWin      bool `json:"is_win"`

	// LastActionID and LastFreeText feed the next generation request.
	LastActionID string `json:"last_action_id,omitempty"`
	LastFreeText string `json:"last_free_text,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSessionState creates a fresh session bound to a save slot,
// starting at the given world location.
func NewSessionState(slot int, start string) *SessionState {
	parts := make(map[string]bool, len(PartNames))
	for _, p := range PartNames {
		parts[p] = false
	}
	return &SessionState{
		ID:             uuid.New(),
		Slot:           slot,
		Turn:           0,
		Chapter:        1,
		Location:       start,
		Profession:     ProfessionHardware,
		Level:          1,
		HP:             DefaultHP,
		KnowledgeScore: 0,
		RobotParts:     parts,
		Flags:          make(map[string]any),
		Inventory:      make([]string, 0),
		DangerLevel:    DefaultDangerLevel,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// RobotComplete reports whether all four build modules are done.
// This is the win condition.
func (gs *SessionState) RobotComplete() bool {
	for _, p := range PartNames {
		if !gs.RobotParts[p] {
			return false
		}
	}
	return true
}

// IsTerminal reports whether the session has reached a terminal state.
func (gs *SessionState) IsTerminal() bool {
	return gs.IsGameOver || gs.IsWin
}

// AppendLog adds an entry to the narrative log.
func (gs *SessionState) AppendLog(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	if gs.Log != "" {
		gs.Log += "\n"
	}
	gs.Log += entry
}

// AppendLogf adds a formatted entry to the narrative log.
func (gs *SessionState) AppendLogf(format string, args ...any) {
	gs.AppendLog(fmt.Sprintf(format, args...))
}

// PromptState is the read-only projection of SessionState sent to the
// generator with every request. It deliberately excludes the log, the
// save slot and the terminal flags.
type PromptState struct {
	Turn           int             `json:"turn"`
	Chapter        int             `json:"chapter"`
	Location       string          `json:"location"`
	Profession     Profession      `json:"profession"`
	Level          int             `json:"level"`
	HP             int             `json:"hp"`
	KnowledgeScore int             `json:"knowledge_score"`
	RobotParts     map[string]bool `json:"robot_parts"`
	Flags          map[string]any  `json:"flags"`
	Inventory      []string        `json:"inventory"`
	DangerLevel    int             `json:"danger_level"`
}

// Projection returns the generator-facing view of the session.
func (gs *SessionState) Projection() PromptState {
	return PromptState{
		Turn:           gs.Turn,
		Chapter:        gs.Chapter,
		Location:       gs.Location,
		Profession:     gs.Profession,
		Level:          gs.Level,
		HP:             gs.HP,
		KnowledgeScore: gs.KnowledgeScore,
		RobotParts:     gs.RobotParts,
		Flags:          gs.Flags,
		Inventory:      gs.Inventory,
		DangerLevel:    gs.DangerLevel,
	}
}
