package turn

import (
	"strings"
	"testing"

	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

func testWorld() *world.World {
	return &world.World{
		Start: "bunker_entrance",
		Rooms: map[string]world.Room{
			"bunker_entrance": {Name: "Bunker Entrance", Connections: []string{"lab_1", "storage"}},
			"lab_1":           {Name: "Electronics Lab", Connections: []string{"bunker_entrance"}},
			"storage":         {Name: "Storage Bay", Connections: []string{"bunker_entrance"}},
		},
	}
}

func TestSanitize_FiltersAllMovementChoices(t *testing.T) {
	resp := &TurnResponse{
		Narration: "x",
		Mode:      ModeExplore,
		Choices: []Choice{
			{ID: "inspect_door", Text: "Inspect the door"},
			{ID: "move_exit_building", Text: "Leave the building"},
			{ID: "move_lab_1", Text: "Sneak into the lab"},
			{ID: "free_action", Text: "Something else"},
			{ID: "move_rooftop", Text: "Climb up"},
		},
	}

	out := Sanitize(resp, "bunker_entrance", testWorld(), nil)

	for _, c := range out.Choices {
		if strings.HasPrefix(c.ID, MovePrefix) {
			t.Errorf("movement choice %q survived sanitization", c.ID)
		}
	}
	if len(out.Choices) != 2 {
		t.Errorf("expected 2 surviving choices, got %d: %+v", len(out.Choices), out.Choices)
	}
	if out.Choices[0].ID != "inspect_door" || out.Choices[1].ID != FreeActionID {
		t.Errorf("surviving choices out of order: %+v", out.Choices)
	}
}

func TestSanitize_DiscardsLocationOverride(t *testing.T) {
	resp := &TurnResponse{
		Narration:       "x",
		Mode:            ModeExplore,
		StateUpdateHint: &state.UpdateHint{Location: "lab_3", DangerDelta: 2},
	}

	out := Sanitize(resp, "bunker_entrance", testWorld(), nil)

	if out.StateUpdateHint.Location != nil {
		t.Errorf("location override survived: %v", out.StateUpdateHint.Location)
	}
	if out.StateUpdateHint.DangerDelta != 2 {
		t.Error("unrelated hint fields must be preserved")
	}
}

// The location field is dropped whatever its type; a numeric value must
// not kill the turn at parse time.
func TestSanitize_DiscardsNonStringLocation(t *testing.T) {
	raw := `{"narration": "x", "mode": "explore",
		"state_update_hint": {"location": 123, "danger_delta": 2}}`

	resp, err := Parse(raw)
	if err != nil {
		t.Fatalf("non-string location must not be fatal: %v", err)
	}

	out := Sanitize(resp, "bunker_entrance", testWorld(), nil)

	if out.StateUpdateHint.Location != nil {
		t.Errorf("location override survived: %v", out.StateUpdateHint.Location)
	}
	if out.StateUpdateHint.DangerDelta != 2 {
		t.Error("unrelated hint fields must be preserved")
	}
}

func TestSanitize_DropsMalformedQuiz(t *testing.T) {
	tests := []struct {
		name string
		quiz *Quiz
		keep bool
	}{
		{
			name: "well formed",
			quiz: &Quiz{
				Question:    "What does PWM stand for?",
				Options:     map[string]string{"A": "Pulse Width Modulation", "B": "Power Wave Mode"},
				Correct:     "A",
				Explanation: "PWM controls power by switching duty cycle.",
			},
			keep: true,
		},
		{
			name: "lowercase correct label still valid",
			quiz: &Quiz{
				Question: "Pick one",
				Options:  map[string]string{"A": "x", "B": "y"},
				Correct:  "b",
			},
			keep: true,
		},
		{
			name: "empty question",
			quiz: &Quiz{Question: "  ", Options: map[string]string{"A": "x", "B": "y"}, Correct: "A"},
		},
		{
			name: "single option",
			quiz: &Quiz{Question: "q", Options: map[string]string{"A": "x"}, Correct: "A"},
		},
		{
			name: "correct label not offered",
			quiz: &Quiz{Question: "q", Options: map[string]string{"A": "x", "B": "y"}, Correct: "E"},
		},
		{
			name: "no options",
			quiz: &Quiz{Question: "q", Correct: "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &TurnResponse{Narration: "x", Mode: ModeQuiz, Quiz: tt.quiz}
			out := Sanitize(resp, "bunker_entrance", testWorld(), nil)
			if tt.keep && out.Quiz == nil {
				t.Error("well-formed quiz was dropped")
			}
			if !tt.keep && out.Quiz != nil {
				t.Error("malformed quiz survived")
			}
		})
	}
}

func TestSanitize_NilSafe(t *testing.T) {
	if Sanitize(nil, "bunker_entrance", testWorld(), nil) != nil {
		t.Error("nil response should stay nil")
	}

	resp := &TurnResponse{Narration: "x", Mode: ModeExplore}
	out := Sanitize(resp, "bunker_entrance", testWorld(), nil)
	if out == nil || out.Narration != "x" {
		t.Error("response without choices or hint should pass through")
	}
}
