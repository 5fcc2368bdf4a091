package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/turn"
)

// textWidth is the wrap column for narration and summaries.
const textWidth = 70

var (
	narrationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // green
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // yellow
	mediaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // dark grey
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // teal
	outcomeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// Console is the terminal implementation of the engine UI. Prompts run
// as short-lived bubbletea programs; plain output goes straight to out.
type Console struct {
	logger *slog.Logger
	out    io.Writer
}

func New(logger *slog.Logger) *Console {
	return &Console{logger: logger, out: os.Stdout}
}

func (c *Console) Narrate(text string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, narrationStyle.Render(wordwrap.String(text, textWidth)))
}

func (c *Console) Notify(text string) {
	fmt.Fprintln(c.out, noticeStyle.Render(wordwrap.String(text, textWidth)))
}

func (c *Console) ShowMedia(imagePrompt, audioPrompt string) {
	if imagePrompt != "" {
		fmt.Fprintln(c.out, mediaStyle.Render("[scene: "+imagePrompt+"]"))
	}
	if audioPrompt != "" {
		fmt.Fprintln(c.out, mediaStyle.Render("[sound: "+audioPrompt+"]"))
	}
}

func (c *Console) ShowStatus(gs *state.SessionState) {
	parts := 0
	for _, name := range state.PartNames {
		if gs.RobotParts[name] {
			parts++
		}
	}

	line := fmt.Sprintf("ch %d | turn %d | %s | hp %d | lvl %d | knowledge %d | danger %d%% | parts %d/4",
		gs.Chapter, gs.Turn, gs.Location, gs.HP, gs.Level, gs.KnowledgeScore, gs.DangerLevel, parts)
	fmt.Fprintln(c.out, statusStyle.Render(line))
}

// Select runs the turn menu with the save and quit controls enabled.
func (c *Console) Select(menu []turn.Choice) (turn.Selection, error) {
	items := make([]string, len(menu))
	for i, ch := range menu {
		items[i] = ch.Text
	}

	for {
		idx, outcome, err := runMenu("What do you do?", items, true)
		if err != nil {
			return turn.Selection{}, err
		}

		switch outcome {
		case menuSave:
			return turn.Selection{Action: turn.SaveAction()}, nil
		case menuQuit, menuCancelled:
			return turn.Selection{Action: turn.QuitAction()}, nil
		case menuPicked:
			ch := menu[idx]
			return turn.Selection{Action: turn.DecodeAction(ch.ID), Choice: ch}, nil
		}
	}
}

// AskQuiz prints the question and collects a single answer label. The
// engine validates the label and re-asks on bad input.
func (c *Console) AskQuiz(q *turn.Quiz) (turn.QuizReply, error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, questionStyle.Render(wordwrap.String(q.Question, textWidth)))
	for _, label := range turn.AllowedLabels(q) {
		fmt.Fprintf(c.out, "  %s) %s\n", label, q.Options[label])
	}

	answer, err := readInput("Your answer (or \"save\"):", "", false)
	if err != nil {
		return turn.QuizReply{}, err
	}
	if strings.EqualFold(answer, "save") {
		return turn.QuizReply{Save: true}, nil
	}
	return turn.QuizReply{Label: answer}, nil
}

func (c *Console) ReadLine(prompt string) (string, error) {
	return readInput(prompt, "describe your action", false)
}

// ShowEnding prints the outcome and summary, then offers to copy the
// summary to the clipboard.
func (c *Console) ShowEnding(outcome, summary string) {
	fmt.Fprintln(c.out)
	if outcome != "" {
		fmt.Fprintln(c.out, outcomeStyle.Render(wordwrap.String(outcome, textWidth)))
	}
	if summary == "" {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, narrationStyle.Render(wordwrap.String(summary, textWidth)))

	answer, err := readInput("Copy the summary to your clipboard? (y/N)", "", false)
	if err != nil {
		return
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		if err := clipboard.WriteAll(summary); err != nil {
			c.logger.Warn("Clipboard copy failed", "error", err)
			c.Notify("Could not access the clipboard.")
			return
		}
		c.Notify("Summary copied.")
	}
}

// Pick runs a plain selection menu without in-game controls. Used by the
// startup flow for slots and professions.
func (c *Console) Pick(title string, items []string) (int, error) {
	idx, outcome, err := runMenu(title, items, false)
	if err != nil {
		return 0, err
	}
	if outcome != menuPicked {
		return 0, ErrCancelled
	}
	return idx, nil
}

// PromptSecret collects sensitive input with echo disabled.
func (c *Console) PromptSecret(prompt string) (string, error) {
	return readInput(prompt, "", true)
}
