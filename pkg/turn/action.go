package turn

import "strings"

// ActionKind is the closed set of things a menu selection can mean.
type ActionKind int

const (
	// ActionGeneric is a generator-authored action; its narrative effect
	// is deferred to the next generation request.
	ActionGeneric ActionKind = iota
	// ActionMove is a locally synthesized movement to a connected room.
	ActionMove
	// ActionFree prompts the player for a line of free-form text.
	ActionFree
	// ActionSave is the out-of-band save control; it never consumes the turn.
	ActionSave
	// ActionQuit ends the session in a neutral terminal state.
	ActionQuit
)

// Action is the decoded meaning of a selection. Identifier dispatch
// happens exactly once, here at the composer boundary; callers switch on
// Kind and never re-parse the id string.
type Action struct {
	Kind        ActionKind
	ID          string
	Destination string // set for ActionMove
}

// Selection pairs a decoded action with the menu choice that produced
// it. Save and quit controls carry a zero Choice.
type Selection struct {
	Action Action
	Choice Choice
}

// QuizReply is the player's answer to a quiz prompt, or a request to
// save without consuming the answer.
type QuizReply struct {
	Save  bool
	Label string
}

// DecodeAction classifies a choice identifier.
func DecodeAction(choiceID string) Action {
	switch {
	case strings.HasPrefix(choiceID, MovePrefix):
		return Action{
			Kind:        ActionMove,
			ID:          choiceID,
			Destination: strings.TrimPrefix(choiceID, MovePrefix),
		}
	case choiceID == FreeActionID:
		return Action{Kind: ActionFree, ID: choiceID}
	default:
		return Action{Kind: ActionGeneric, ID: choiceID}
	}
}

// SaveAction returns the out-of-band save control.
func SaveAction() Action { return Action{Kind: ActionSave} }

// QuitAction returns the out-of-band quit control.
func QuitAction() Action { return Action{Kind: ActionQuit} }
