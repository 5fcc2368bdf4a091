package state

// QuizVerdict is the outcome of a quiz turn. It is the only channel by
// which quiz results affect hit points and knowledge score.
type QuizVerdict string

const (
	VerdictNone    QuizVerdict = ""
	VerdictCorrect QuizVerdict = "correct"
	VerdictWrong   QuizVerdict = "wrong"
)

// UpdateHint is the generator-proposed set of state deltas for a turn.
// It is untrusted until it has passed the response validator; in
// particular Location is always discarded there, regardless of value or
// type, which is why it decodes as any rather than string.
//
// RobotParts and Flags carry raw decoded values: the applier only
// accepts real booleans for robot parts and ignores everything else.
type UpdateHint struct {
	Chapter        int            `json:"chapter,omitempty"`
	Location       any            `json:"location,omitempty"`
	RobotParts     map[string]any `json:"robot_parts,omitempty"`
	Flags          map[string]any `json:"flags,omitempty"`
	InventoryAdd   []string       `json:"inventory_add,omitempty"`
	DangerDelta    int            `json:"danger_delta,omitempty"`
	KnowledgeDelta int            `json:"knowledge_delta,omitempty"`
	HPDelta        int            `json:"hp_delta,omitempty"`
}

// IsEmpty reports whether the hint proposes no changes at all.
func (h *UpdateHint) IsEmpty() bool {
	return h == nil || (h.Chapter == 0 &&
		h.Location == nil &&
		len(h.RobotParts) == 0 &&
		len(h.Flags) == 0 &&
		len(h.InventoryAdd) == 0 &&
		h.DangerDelta == 0 &&
		h.KnowledgeDelta == 0 &&
		h.HPDelta == 0)
}
