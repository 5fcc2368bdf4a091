package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/survival-engine/internal/services"
	"github.com/jwebster45206/survival-engine/internal/storage"
	"github.com/jwebster45206/survival-engine/pkg/chat"
	"github.com/jwebster45206/survival-engine/pkg/prompts"
	"github.com/jwebster45206/survival-engine/pkg/state"
	"github.com/jwebster45206/survival-engine/pkg/turn"
	"github.com/jwebster45206/survival-engine/pkg/world"
)

// Phase tracks the controller lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// quizInterval controls the turn cadence: every third turn is a quiz.
const quizInterval = 3

// UI is the player-facing surface the engine drives. The engine never
// prints; the console package implements this for terminal play and
// tests implement it with scripts.
type UI interface {
	// Narrate displays turn narration
	Narrate(text string)

	// Notify displays an out-of-band message (saves, errors, verdicts)
	Notify(text string)

	// ShowMedia displays generator media prompts, both may be empty
	ShowMedia(imagePrompt, audioPrompt string)

	// ShowStatus displays the player status line
	ShowStatus(gs *state.SessionState)

	// Select presents a menu and returns the player's selection
	Select(menu []turn.Choice) (turn.Selection, error)

	// AskQuiz presents a quiz and returns an answer or a save request
	AskQuiz(q *turn.Quiz) (turn.QuizReply, error)

	// ReadLine collects one line of free text
	ReadLine(prompt string) (string, error)

	// ShowEnding displays the outcome text and the run summary
	ShowEnding(outcome, summary string)
}

// Engine runs the turn loop for one session. It owns the only paths
// that mutate session state: the applier for hints and verdicts, and
// the movement commit for location.
type Engine struct {
	logger  *slog.Logger
	llm     services.LLMService
	store   storage.Storage
	ui      UI
	world   *world.World
	applier *state.Applier
	gs      *state.SessionState
	phase   Phase
}

func New(logger *slog.Logger, llm services.LLMService, store storage.Storage, ui UI, w *world.World, gs *state.SessionState) *Engine {
	return &Engine{
		logger:  logger,
		llm:     llm,
		store:   store,
		ui:      ui,
		world:   w,
		applier: state.NewApplier(logger),
		gs:      gs,
		phase:   PhaseIdle,
	}
}

// Phase reports the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Run plays turns until the session reaches a terminal state. It returns
// an error only for UI failures; generator faults end the session
// normally through the fault path.
func (e *Engine) Run(ctx context.Context) error {
	e.phase = PhaseRunning

	for e.phase == PhaseRunning {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session interrupted: %w", err)
		}
		if err := e.playTurn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) playTurn(ctx context.Context) error {
	e.gs.Turn++
	quizTurn := e.gs.Turn%quizInterval == 0

	resp, err := e.generate(ctx, quizTurn)
	if err != nil {
		e.logger.Error("Generator response unusable", "turn", e.gs.Turn, "error", err)
		e.ui.Notify(prompts.FaultNotice)
		e.saveSnapshot(ctx)
		e.end(ctx, "")
		return nil
	}

	resp = turn.Sanitize(resp, e.gs.Location, e.world, e.logger)

	e.gs.AppendLogf("[Turn %d] %s", e.gs.Turn, resp.Narration)
	e.ui.Narrate(resp.Narration)
	if resp.Media != nil {
		e.ui.ShowMedia(resp.Media.ImagePrompt, resp.Media.AudioPrompt)
	}

	if quizTurn && resp.Quiz != nil {
		if err := e.runQuiz(ctx, resp); err != nil {
			return err
		}
	} else {
		done, err := e.runExplore(ctx, resp)
		if err != nil || done {
			return err
		}
	}

	// Status reflects the turn's resolved numbers, not the pre-turn ones.
	e.ui.ShowStatus(e.gs)

	// Win is checked before loss: completing the robot on the turn hp
	// runs out still counts as an escape.
	if e.gs.RobotComplete() {
		e.gs.IsWin = true
	} else if e.gs.HP <= 0 {
		e.gs.IsGameOver = true
	}

	e.saveSnapshot(ctx)

	if e.gs.IsTerminal() {
		outcome := prompts.LossEnding
		if e.gs.IsWin {
			outcome = prompts.WinEnding
		}
		e.end(ctx, outcome)
	}
	return nil
}

// generate builds the prompt for this turn, calls the model and parses
// the reply. Any failure here is fatal to the session.
func (e *Engine) generate(ctx context.Context, quizTurn bool) (*turn.TurnResponse, error) {
	var msgs []chat.ChatMessage
	var err error
	if quizTurn {
		msgs, err = prompts.QuizMessages(e.gs.Projection())
	} else {
		msgs, err = prompts.ExploreMessages(e.gs.Projection(), e.world, e.gs.LastActionID, e.gs.LastFreeText)
	}
	if err != nil {
		return nil, err
	}

	chatResp, err := e.llm.Chat(ctx, msgs)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}

	resp, err := turn.Parse(chatResp.Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse turn response: %w", err)
	}
	return resp, nil
}

// runExplore handles menu selection and applies the hint. It returns
// done=true when the player quit and the session is already ended.
func (e *Engine) runExplore(ctx context.Context, resp *turn.TurnResponse) (bool, error) {
	menu := turn.ComposeMenu(resp.Choices, e.gs.Location, e.world)
	if len(menu) == 0 {
		e.logger.Warn("Empty turn menu, skipping selection", "turn", e.gs.Turn, "location", e.gs.Location)
		e.gs.LastActionID = ""
		e.gs.LastFreeText = ""
		e.applier.Apply(e.gs, resp.StateUpdateHint, state.VerdictNone)
		return false, nil
	}

	for {
		sel, err := e.ui.Select(menu)
		if err != nil {
			return false, fmt.Errorf("menu selection failed: %w", err)
		}

		switch sel.Action.Kind {
		case turn.ActionSave:
			e.saveSnapshot(ctx)
			e.ui.Notify("Game saved.")
			continue

		case turn.ActionQuit:
			e.gs.AppendLogf("[Turn %d] The engineer retreats into hiding.", e.gs.Turn)
			e.saveSnapshot(ctx)
			e.end(ctx, prompts.QuitEnding)
			return true, nil

		case turn.ActionMove:
			if !turn.CommitMove(e.gs, sel.Action.Destination, e.world, e.logger) {
				e.ui.Notify("That way is blocked.")
				continue
			}
			e.gs.LastActionID = sel.Action.ID
			e.gs.LastFreeText = ""
			e.gs.AppendLogf("[Turn %d] Moved to %s.", e.gs.Turn, e.gs.Location)

		case turn.ActionFree:
			text, err := e.ui.ReadLine("What do you do? ")
			if err != nil {
				return false, fmt.Errorf("free action input failed: %w", err)
			}
			e.gs.LastActionID = turn.FreeActionID
			e.gs.LastFreeText = strings.TrimSpace(text)
			e.gs.AppendLogf("[Turn %d] Action: %s", e.gs.Turn, e.gs.LastFreeText)

		default:
			e.gs.LastActionID = sel.Action.ID
			e.gs.LastFreeText = ""
			e.gs.AppendLogf("[Turn %d] Action: %s", e.gs.Turn, sel.Choice.Text)
		}
		break
	}

	e.applier.Apply(e.gs, resp.StateUpdateHint, state.VerdictNone)
	return false, nil
}

// runQuiz collects one answer, judges it and applies the hint together
// with the verdict.
func (e *Engine) runQuiz(ctx context.Context, resp *turn.TurnResponse) error {
	q := resp.Quiz

	var reply turn.QuizReply
	for {
		var err error
		reply, err = e.ui.AskQuiz(q)
		if err != nil {
			return fmt.Errorf("quiz input failed: %w", err)
		}
		if reply.Save {
			e.saveSnapshot(ctx)
			e.ui.Notify("Game saved.")
			continue
		}
		if turn.ValidLabel(q, reply.Label) {
			break
		}
		e.ui.Notify(fmt.Sprintf("Answer with one of: %s", strings.Join(turn.AllowedLabels(q), ", ")))
	}

	verdict := turn.Judge(q, reply.Label)
	label := strings.ToUpper(reply.Label)
	e.gs.LastActionID = "quiz_answer_" + label
	e.gs.LastFreeText = ""

	if verdict == state.VerdictCorrect {
		e.ui.Notify("Correct!")
		e.gs.AppendLogf("[Turn %d] Quiz: %s Answered %s: correct.", e.gs.Turn, q.Question, label)
	} else {
		msg := fmt.Sprintf("Wrong. The answer was %s.", strings.ToUpper(q.Correct))
		if q.Explanation != "" {
			msg += " " + q.Explanation
		}
		e.ui.Notify(msg)
		e.gs.AppendLogf("[Turn %d] Quiz: %s Answered %s: wrong (correct %s). %s",
			e.gs.Turn, q.Question, label, strings.ToUpper(q.Correct), q.Explanation)
	}

	e.applier.Apply(e.gs, resp.StateUpdateHint, verdict)
	return nil
}

// end finishes the session: summary generation with fallback to the raw
// log, persistence, and the ending screen.
func (e *Engine) end(ctx context.Context, outcome string) {
	e.phase = PhaseEnded

	summary := e.summarize(ctx)
	if err := e.store.SaveSummary(ctx, e.gs.Slot, summary); err != nil {
		e.logger.Warn("Failed to persist summary", "slot", e.gs.Slot, "error", err)
	}

	e.ui.ShowEnding(outcome, summary)
}

func (e *Engine) summarize(ctx context.Context) string {
	if strings.TrimSpace(e.gs.Log) == "" {
		return ""
	}

	chatResp, err := e.llm.Chat(ctx, prompts.SummaryMessages(e.gs.Log))
	if err != nil || strings.TrimSpace(chatResp.Message.Content) == "" {
		e.logger.Warn("Summary generation failed, using raw log", "error", err)
		return e.gs.Log
	}
	return chatResp.Message.Content
}

func (e *Engine) saveSnapshot(ctx context.Context) {
	if err := e.store.SaveSession(ctx, e.gs); err != nil {
		e.logger.Warn("Failed to save session", "slot", e.gs.Slot, "error", err)
	}
}
