package state

import (
	"log/slog"
	"slices"
)

// levelUpScores are the knowledge scores at which the player levels up.
// The check is by equality, not by crossing: a delta that jumps over a
// threshold does not trigger a level-up.
var levelUpScores = []int{3, 6}

// Applier is the sole mutator of SessionState. It applies a sanitized
// update hint plus an optional quiz verdict under clamping and leveling
// rules. It performs no I/O and never changes Location or Turn.
type Applier struct {
	logger *slog.Logger
}

// NewApplier creates an applier. The logger may be nil.
func NewApplier(logger *slog.Logger) *Applier {
	return &Applier{logger: logger}
}

// Apply merges the hint and verdict into the session state.
// A nil hint applies only the verdict.
func (a *Applier) Apply(gs *SessionState, hint *UpdateHint, verdict QuizVerdict) {
	if hint == nil {
		hint = &UpdateHint{}
	}

	// Chapter: present and nonzero wins. There is deliberately no
	// decrease protection; see the leveling note below.
	if hint.Chapter != 0 {
		gs.Chapter = hint.Chapter
	}

	// Robot parts: only the four named modules, and only when the hint
	// carries a real boolean for that key.
	for _, name := range PartNames {
		if v, ok := hint.RobotParts[name]; ok {
			if b, isBool := v.(bool); isBool {
				gs.RobotParts[name] = b
			} else if a.logger != nil {
				a.logger.Debug("Ignoring non-boolean robot part hint", "part", name, "value", v)
			}
		}
	}

	// Free-form flags: shallow merge, hint values win.
	if len(hint.Flags) > 0 {
		if gs.Flags == nil {
			gs.Flags = make(map[string]any, len(hint.Flags))
		}
		for k, v := range hint.Flags {
			gs.Flags[k] = v
		}
	}

	// Inventory: append unseen items, preserving order.
	for _, item := range hint.InventoryAdd {
		if item == "" || slices.Contains(gs.Inventory, item) {
			continue
		}
		gs.Inventory = append(gs.Inventory, item)
	}

	gs.DangerLevel = clamp(gs.DangerLevel+hint.DangerDelta, 0, 100)

	gs.KnowledgeScore += hint.KnowledgeDelta
	switch verdict {
	case VerdictCorrect:
		gs.KnowledgeScore++
	case VerdictWrong:
		gs.HP--
	}

	// HP has no floor here; the turn controller observes <= 0 once per
	// turn and ends the session.
	gs.HP += hint.HPDelta

	// Level-up on landing exactly on a threshold.
	if slices.Contains(levelUpScores, gs.KnowledgeScore) {
		gs.Level++
		if a.logger != nil {
			a.logger.Info("Level up", "level", gs.Level, "knowledge_score", gs.KnowledgeScore)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
