package turn

import (
	"sort"
	"strings"

	"github.com/jwebster45206/survival-engine/pkg/state"
)

// AllowedLabels returns the quiz's option labels in sorted order.
func AllowedLabels(q *Quiz) []string {
	labels := make([]string, 0, len(q.Options))
	for label := range q.Options {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// ValidLabel reports whether answer matches one of the quiz's option
// labels, case-insensitively.
func ValidLabel(q *Quiz, answer string) bool {
	for label := range q.Options {
		if strings.EqualFold(label, answer) {
			return true
		}
	}
	return false
}

// Judge compares the player's answer against the correct label,
// case-insensitively. The verdict is the only channel by which a quiz
// affects the session state; the quiz record carries no numeric deltas.
func Judge(q *Quiz, answer string) state.QuizVerdict {
	if strings.EqualFold(answer, q.Correct) {
		return state.VerdictCorrect
	}
	return state.VerdictWrong
}
