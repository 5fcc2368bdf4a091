package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/survival-engine/pkg/chat"
	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

// Opening is shown once at the start of a new session.
const Opening = "You wake on the cold floor of a bunker beneath a robotics research facility. " +
	"Outside, the machines that ended the world are still hunting. Your only way out is to " +
	"build a survival robot of your own: power, motor, sensors, control. Four modules. One chance."

// Ending texts by outcome.
const (
	WinEnding = "The robot's four modules hum in unison. It shoulders the blast door open and " +
		"scans the horizon for a safe route. You follow it out of the facility, into the unknown."
	LossEnding = "Your strength gives out in the ruined facility. " +
		"Maybe next time, you'll make better choices."
	QuitEnding = "You slip back into the bunker's shadows and leave the facility behind, for now."
	// FaultNotice is shown when the generator returns an unusable response.
	FaultNotice = "The session ended due to a response failure."
)

// systemPrompt establishes the narrator role and the output contract.
// The engine discards anything that violates the contract, so the prompt
// states the movement and location rules explicitly to reduce waste.
const systemPrompt = `You are the narrator of a turn-based survival adventure set in a robotics
research facility after a machine uprising. The player is an engineer trying to build a
survival robot from four modules: power, motor, sensors, control.

Respond with a single JSON object and nothing else. No markdown fences, no prose outside JSON.

Rules you must follow:
- Never invent rooms or propose movement. Choice ids must never start with "move_";
  movement options are generated by the game itself from the facility map.
- Never set "location" in state_update_hint. The game ignores it.
- Keep narration to a short paragraph, second person, present tense.
- Tie content to the player's profession and current room when possible.
- You may include a "free_action" choice to let the player improvise.`

const exploreContract = `Output schema for this explore turn:
{
  "narration": "string",
  "media": {"image_prompt": "string", "audio_prompt": "string"},
  "mode": "explore",
  "choices": [{"id": "snake_case_verb_phrase", "text": "string"}],
  "state_update_hint": {
    "chapter": int, "robot_parts": {"power|motor|sensors|control": bool},
    "flags": {}, "inventory_add": ["string"],
    "danger_delta": int, "knowledge_delta": int, "hp_delta": int
  }
}
Offer 2-3 non-movement choices. All hint fields are optional; use small deltas.`

const quizContract = `Output schema for this quiz turn:
{
  "narration": "string",
  "mode": "quiz",
  "quiz": {
    "question": "string",
    "options": {"A": "string", "B": "string", "C": "string", "D": "string"},
    "correct": "A|B|C|D",
    "explanation": "string"
  },
  "state_update_hint": {"danger_delta": int}
}
Ask one robotics or engineering question matched to the player's profession and level.
Do not include numeric rewards in the quiz; scoring is handled by the game.`

// summaryInstruction drives end-of-run summarization over the raw log.
const summaryInstruction = `Summarize the following play log as a short prose recap of 15-25
sentences: the player's journey through the ruined robotics facility, the choices they made,
and the engineering knowledge they picked up along the way. Plain text, no lists, no JSON.`

// ExploreMessages builds the generation request for an explore turn. It
// carries the state projection, the full facility map, the current room,
// and the player's previous action.
func ExploreMessages(ps state.PromptState, w *world.World, lastActionID, lastFreeText string) ([]chat.ChatMessage, error) {
	stateJSON, err := json.Marshal(ps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompt state: %w", err)
	}
	worldJSON, err := json.Marshal(w.Rooms)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal world: %w", err)
	}

	var roomJSON []byte
	if room, ok := w.Room(ps.Location); ok {
		if roomJSON, err = json.Marshal(room); err != nil {
			return nil, fmt.Errorf("failed to marshal room: %w", err)
		}
	}

	user := fmt.Sprintf("Current game state:\n%s\n\nFacility map:\n%s\n\nCurrent room:\n%s\n",
		stateJSON, worldJSON, roomJSON)
	if lastActionID != "" {
		user += fmt.Sprintf("\nThe player's previous action id: %s", lastActionID)
	}
	if lastFreeText != "" {
		user += fmt.Sprintf("\nThe player's previous free-form action: %s", lastFreeText)
	}
	user += "\n\nNarrate the next explore turn."

	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: systemPrompt},
		{Role: chat.ChatRoleSystem, Content: exploreContract},
		{Role: chat.ChatRoleUser, Content: user},
	}, nil
}

// QuizMessages builds the generation request for a quiz turn.
func QuizMessages(ps state.PromptState) ([]chat.ChatMessage, error) {
	stateJSON, err := json.Marshal(ps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompt state: %w", err)
	}

	user := fmt.Sprintf("Current game state:\n%s\n\nAsk the next quiz question.", stateJSON)

	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: systemPrompt},
		{Role: chat.ChatRoleSystem, Content: quizContract},
		{Role: chat.ChatRoleUser, Content: user},
	}, nil
}

// SummaryMessages builds the end-of-session summarization request.
func SummaryMessages(log string) []chat.ChatMessage {
	return []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: summaryInstruction},
		{Role: chat.ChatRoleUser, Content: "Play log:\n" + log},
	}
}
