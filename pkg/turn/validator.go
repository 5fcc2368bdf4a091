package turn

import (
	"log/slog"
	"strings"

	"github.com/jwebster45206/survival-engine/pkg/world"
)

// MovePrefix is the reserved identifier prefix for movement choices.
// Movement is never accepted from the generator; choices carrying this
// prefix are synthesized locally from the world graph.
const MovePrefix = "move_"

// FreeActionID is the reserved identifier for the free-text action.
const FreeActionID = "free_action"

// Sanitize is the trust boundary between the generator and the
// authoritative state. It strips generator output that would violate
// invariants:
//
//   - candidate choices with the reserved movement prefix are discarded
//     outright — the generator may suggest what to do, never where to go;
//   - the hint's location field is discarded unconditionally;
//   - a structurally malformed quiz record is dropped (the turn then
//     routes to the choice composer instead of the quiz handler).
//
// Discards are expected adversarial noise, not anomalies; they are
// logged at debug level only. Sanitize mutates and returns resp.
func Sanitize(resp *TurnResponse, currentLocation string, w *world.World, logger *slog.Logger) *TurnResponse {
	if resp == nil {
		return nil
	}

	if len(resp.Choices) > 0 {
		kept := resp.Choices[:0]
		for _, c := range resp.Choices {
			if strings.HasPrefix(c.ID, MovePrefix) {
				if logger != nil {
					logger.Debug("Discarding generator movement choice",
						"choice_id", c.ID,
						"location", currentLocation)
				}
				continue
			}
			kept = append(kept, c)
		}
		resp.Choices = kept
	}

	if resp.StateUpdateHint != nil && resp.StateUpdateHint.Location != nil {
		if logger != nil {
			logger.Debug("Discarding generator location override",
				"proposed", resp.StateUpdateHint.Location,
				"location", currentLocation)
		}
		resp.StateUpdateHint.Location = nil
	}

	if resp.Quiz != nil && !quizWellFormed(resp.Quiz) {
		if logger != nil {
			logger.Debug("Dropping malformed quiz record", "location", currentLocation)
		}
		resp.Quiz = nil
	}

	return resp
}

// quizWellFormed checks the structural minimum for a playable quiz: a
// question, at least two options, and a correct label that is actually
// one of the options.
func quizWellFormed(q *Quiz) bool {
	if strings.TrimSpace(q.Question) == "" {
		return false
	}
	if len(q.Options) < 2 {
		return false
	}
	return ValidLabel(q, q.Correct)
}
