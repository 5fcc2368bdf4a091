package turn

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/survival-engine/pkg/state"
)

// Mode selects how a turn is played.
type Mode string

const (
	ModeExplore Mode = "explore"
	ModeQuiz    Mode = "quiz"
)

// Choice is a single selectable action offered to the player.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Media carries optional passthrough prompts for image/audio generation.
// The engine displays them and otherwise ignores them.
type Media struct {
	ImagePrompt string `json:"image_prompt,omitempty"`
	AudioPrompt string `json:"audio_prompt,omitempty"`
}

// Quiz is a single-answer question. The options map keys are exactly
// the labels the quiz handler accepts.
type Quiz struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
}

// TurnResponse is the generator's payload for one turn. It is untrusted
// until it has passed Sanitize: choices may propose illegal movement and
// the hint may try to override the player's location.
type TurnResponse struct {
	Narration       string            `json:"narration"`
	Media           *Media            `json:"media,omitempty"`
	Mode            Mode              `json:"mode"`
	Choices         []Choice          `json:"choices,omitempty"`
	Quiz            *Quiz             `json:"quiz,omitempty"`
	StateUpdateHint *state.UpdateHint `json:"state_update_hint,omitempty"`
}

// Parse decodes a raw generator blob into a TurnResponse. The blob is
// schema-validated first so that required fields fail closed while
// unknown fields pass through ignored. Any failure here is terminal for
// the session; there is no partial acceptance.
func Parse(raw string) (*TurnResponse, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object found in generator response")
	}

	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, fmt.Errorf("failed to decode generator response: %w", err)
	}
	if err := turnResponseSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("generator response failed schema validation: %w", err)
	}

	var resp TurnResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal turn response: %w", err)
	}
	return &resp, nil
}

// extractJSON strips markdown code fences and surrounding prose,
// returning the outermost JSON object in the text. Generators routinely
// wrap their JSON in ```json fences despite instructions not to.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
