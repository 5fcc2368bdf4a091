package state

import (
	"testing"
)

func newTestSession() *SessionState {
	return NewSessionState(1, "bunker_entrance")
}

func TestApply_LocationIsInvariant(t *testing.T) {
	a := NewApplier(nil)
	gs := newTestSession()

	hints := []*UpdateHint{
		nil,
		{},
		{Location: "lab_3"},
		{Location: "rooftop", Chapter: 2, DangerDelta: 50},
		{Location: "not_even_a_room"},
	}

	for _, hint := range hints {
		before := gs.Location
		a.Apply(gs, hint, VerdictNone)
		if gs.Location != before {
			t.Fatalf("applier changed location from %q to %q (hint %+v)", before, gs.Location, hint)
		}
	}
}

func TestApply_DangerClamping(t *testing.T) {
	a := NewApplier(nil)

	for _, delta := range []int{-1000, -101, -11, -10, -1, 0, 1, 89, 90, 91, 100, 1000} {
		gs := newTestSession() // danger starts at 10
		a.Apply(gs, &UpdateHint{DangerDelta: delta}, VerdictNone)
		if gs.DangerLevel < 0 || gs.DangerLevel > 100 {
			t.Errorf("delta %d left danger level out of range: %d", delta, gs.DangerLevel)
		}
	}

	gs := newTestSession()
	a.Apply(gs, &UpdateHint{DangerDelta: -1000}, VerdictNone)
	if gs.DangerLevel != 0 {
		t.Errorf("expected floor 0, got %d", gs.DangerLevel)
	}
	a.Apply(gs, &UpdateHint{DangerDelta: 1000}, VerdictNone)
	if gs.DangerLevel != 100 {
		t.Errorf("expected ceiling 100, got %d", gs.DangerLevel)
	}
}

func TestApply_LevelUpOnExactThreshold(t *testing.T) {
	// Knowledge 2 -> 3 lands exactly on the threshold and levels up.
	a := NewApplier(nil)
	gs := newTestSession()
	gs.KnowledgeScore = 2

	a.Apply(gs, &UpdateHint{KnowledgeDelta: 1}, VerdictNone)
	if gs.KnowledgeScore != 3 {
		t.Fatalf("expected knowledge 3, got %d", gs.KnowledgeScore)
	}
	if gs.Level != 2 {
		t.Errorf("expected level 2 after landing on threshold, got %d", gs.Level)
	}
}

func TestApply_LevelUpSkippedThreshold(t *testing.T) {
	// Knowledge 2 -> 4 jumps over the threshold; the equality rule means
	// no level-up. This pins the literal behavior rather than a >= rule.
	a := NewApplier(nil)
	gs := newTestSession()
	gs.KnowledgeScore = 2

	a.Apply(gs, &UpdateHint{KnowledgeDelta: 2}, VerdictNone)
	if gs.KnowledgeScore != 4 {
		t.Fatalf("expected knowledge 4, got %d", gs.KnowledgeScore)
	}
	if gs.Level != 1 {
		t.Errorf("expected level to stay 1 when threshold is skipped, got %d", gs.Level)
	}
}

func TestApply_QuizVerdicts(t *testing.T) {
	a := NewApplier(nil)

	gs := newTestSession()
	a.Apply(gs, nil, VerdictCorrect)
	if gs.KnowledgeScore != 1 {
		t.Errorf("correct verdict should add 1 knowledge, got %d", gs.KnowledgeScore)
	}
	if gs.HP != DefaultHP {
		t.Errorf("correct verdict should not touch hp, got %d", gs.HP)
	}

	gs = newTestSession()
	gs.HP = 1
	a.Apply(gs, nil, VerdictWrong)
	if gs.HP != 0 {
		t.Errorf("wrong verdict at hp 1 should leave hp 0, got %d", gs.HP)
	}
	if gs.KnowledgeScore != 0 {
		t.Errorf("wrong verdict should not touch knowledge, got %d", gs.KnowledgeScore)
	}
}

func TestApply_HPDeltaAfterVerdict(t *testing.T) {
	// The wrong-answer penalty lands before the hint's hp delta, and hp
	// may go transiently negative; only the turn controller ends the run.
	a := NewApplier(nil)
	gs := newTestSession()
	gs.HP = 1

	a.Apply(gs, &UpdateHint{HPDelta: -2}, VerdictWrong)
	if gs.HP != -2 {
		t.Errorf("expected hp -2, got %d", gs.HP)
	}
	if gs.IsGameOver {
		t.Error("applier must not set terminal flags")
	}
}

func TestApply_RobotParts(t *testing.T) {
	a := NewApplier(nil)
	gs := newTestSession()

	a.Apply(gs, &UpdateHint{RobotParts: map[string]any{
		"power":   true,
		"motor":   "yes",  // non-boolean, ignored
		"sensors": 1,      // non-boolean, ignored
		"antenna": true,   // unknown part, ignored
		"control": false,  // explicit false is accepted
	}}, VerdictNone)

	if !gs.RobotParts["power"] {
		t.Error("power should be set")
	}
	if gs.RobotParts["motor"] {
		t.Error("non-boolean motor hint should be ignored")
	}
	if gs.RobotParts["sensors"] {
		t.Error("non-boolean sensors hint should be ignored")
	}
	if _, ok := gs.RobotParts["antenna"]; ok {
		t.Error("unknown part should not be added")
	}
	if gs.RobotParts["control"] {
		t.Error("explicit false should overwrite")
	}
}

func TestApply_FlagsShallowMerge(t *testing.T) {
	a := NewApplier(nil)
	gs := newTestSession()
	gs.Flags["met_survivor"] = true
	gs.Flags["codes"] = "old"

	a.Apply(gs, &UpdateHint{Flags: map[string]any{
		"codes":      "new",
		"found_dog":  true,
		"fuel_level": 42,
	}}, VerdictNone)

	if gs.Flags["codes"] != "new" {
		t.Errorf("hint value should win, got %v", gs.Flags["codes"])
	}
	if gs.Flags["met_survivor"] != true {
		t.Error("untouched flags should survive")
	}
	if gs.Flags["found_dog"] != true || gs.Flags["fuel_level"] != 42 {
		t.Error("new flags should merge in")
	}
}

func TestApply_InventoryDedup(t *testing.T) {
	a := NewApplier(nil)
	gs := newTestSession()
	gs.Inventory = []string{"crowbar"}

	a.Apply(gs, &UpdateHint{InventoryAdd: []string{"battery", "crowbar", "battery", "wire"}}, VerdictNone)

	want := []string{"crowbar", "battery", "wire"}
	if len(gs.Inventory) != len(want) {
		t.Fatalf("expected inventory %v, got %v", want, gs.Inventory)
	}
	for i := range want {
		if gs.Inventory[i] != want[i] {
			t.Fatalf("expected inventory %v, got %v", want, gs.Inventory)
		}
	}
}

func TestApply_ChapterOverwrite(t *testing.T) {
	// The chapter overwrite has no ratchet: a lower nonzero chapter in
	// the hint wins. Pinned deliberately.
	a := NewApplier(nil)
	gs := newTestSession()
	gs.Chapter = 3

	a.Apply(gs, &UpdateHint{Chapter: 2}, VerdictNone)
	if gs.Chapter != 2 {
		t.Errorf("expected chapter 2, got %d", gs.Chapter)
	}

	a.Apply(gs, &UpdateHint{}, VerdictNone)
	if gs.Chapter != 2 {
		t.Errorf("zero chapter hint should not change chapter, got %d", gs.Chapter)
	}
}
