package turn

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

var titleCaser = cases.Title(language.English)

// MovementChoices synthesizes one choice per legal connection from the
// current location, in the world graph's order. These are the only
// movement choices that ever reach the player.
func MovementChoices(location string, w *world.World) []Choice {
	conns := w.ConnectionsOf(location)
	if len(conns) == 0 {
		return nil
	}
	moves := make([]Choice, 0, len(conns))
	for _, dest := range conns {
		moves = append(moves, Choice{
			ID:   MovePrefix + dest,
			Text: "Head to " + displayName(dest, w),
		})
	}
	return moves
}

// ComposeMenu merges validator-approved generator choices with the
// locally synthesized movement choices: generator choices first, in
// their original order, then movement.
func ComposeMenu(approved []Choice, location string, w *world.World) []Choice {
	moves := MovementChoices(location, w)
	menu := make([]Choice, 0, len(approved)+len(moves))
	menu = append(menu, approved...)
	menu = append(menu, moves...)
	return menu
}

// CommitMove is the only mutation path for the player's location. It
// re-verifies the destination against the world graph before writing —
// a defensive re-check that should never fail under a correct validator.
// On failure the move is a no-op, logged as an anomaly.
func CommitMove(gs *state.SessionState, dest string, w *world.World, logger *slog.Logger) bool {
	for _, conn := range w.ConnectionsOf(gs.Location) {
		if conn == dest {
			gs.Location = dest
			return true
		}
	}
	if logger != nil {
		logger.Warn("Rejected movement to unconnected room at commit time",
			"from", gs.Location,
			"to", dest)
	}
	gs.AppendLogf("[Move failed] no connection to %s", dest)
	return false
}

// displayName renders a room identifier for menu text, preferring the
// room's declared name over a title-cased identifier.
func displayName(id string, w *world.World) string {
	if r, ok := w.Room(id); ok && r.Name != "" {
		return r.Name
	}
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
