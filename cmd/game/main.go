package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwebster45206/survival-engine/internal/config"
	"github.com/jwebster45206/survival-engine/internal/console"
	"github.com/jwebster45206/survival-engine/internal/engine"
	"github.com/jwebster45206/survival-engine/internal/logger"
	"github.com/jwebster45206/survival-engine/internal/services"
	"github.com/jwebster45206/survival-engine/internal/storage"
	"github.com/jwebster45206/survival-engine/pkg/prompts"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

const maxSlots = 4

func main() {
	if err := run(); err != nil {
		if errors.Is(err, console.ErrCancelled) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := console.New(log)

	apiKey := cfg.OpenAIKey
	if apiKey == "" {
		key, err := ui.PromptSecret("Enter your OpenAI API key:")
		if err != nil {
			return err
		}
		apiKey = key
	}
	if apiKey == "" {
		return errors.New("an OpenAI API key is required")
	}

	llm := services.NewOpenAIService(apiKey, cfg.OpenAIModel)
	if err := llm.InitModel(ctx, cfg.OpenAIModel); err != nil {
		return fmt.Errorf("model check failed: %w", err)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("redis is not reachable (is it running?): %w", err)
	}

	w, err := store.LoadWorld(ctx)
	if err != nil {
		return err
	}

	gs, err := selectSession(ctx, ui, store, w.Start)
	if err != nil {
		return err
	}

	if gs.Turn == 0 {
		ui.Narrate(prompts.Opening)
		gs.AppendLog(prompts.Opening)
	} else {
		ui.Notify(fmt.Sprintf("Resuming slot %d at turn %d.", gs.Slot, gs.Turn))
	}

	eng := engine.New(log, llm, store, ui, w, gs)
	return eng.Run(ctx)
}

// selectSession walks the new/load menus. New games target only empty
// slots and load targets only occupied ones; anything else re-prompts.
func selectSession(ctx context.Context, ui *console.Console, store storage.Storage, start string) (*state.SessionState, error) {
	for {
		mode, err := ui.Pick("Robot Survival", []string{"New game", "Load game"})
		if err != nil {
			return nil, err
		}

		slots, err := store.ListSlots(ctx, maxSlots)
		if err != nil {
			return nil, err
		}

		items := make([]string, len(slots))
		for i, s := range slots {
			if s.Occupied {
				items[i] = fmt.Sprintf("Slot %d: %s", s.Number, s.Label)
			} else {
				items[i] = fmt.Sprintf("Slot %d: empty", s.Number)
			}
		}

		if mode == 0 {
			idx, err := ui.Pick("Start in which slot?", items)
			if err != nil {
				if errors.Is(err, console.ErrCancelled) {
					continue
				}
				return nil, err
			}
			if slots[idx].Occupied {
				ui.Notify("That slot is taken. Pick an empty one.")
				continue
			}

			profession, err := pickProfession(ui)
			if err != nil {
				if errors.Is(err, console.ErrCancelled) {
					continue
				}
				return nil, err
			}

			gs := state.NewSessionState(slots[idx].Number, start)
			gs.Profession = profession
			return gs, nil
		}

		idx, err := ui.Pick("Load which slot?", items)
		if err != nil {
			if errors.Is(err, console.ErrCancelled) {
				continue
			}
			return nil, err
		}
		if !slots[idx].Occupied {
			ui.Notify("That slot is empty. Pick a saved game.")
			continue
		}

		gs, err := store.LoadSession(ctx, slots[idx].Number)
		if err != nil {
			return nil, err
		}
		if gs == nil {
			ui.Notify("That slot is empty. Pick a saved game.")
			continue
		}
		if gs.IsTerminal() {
			ui.Notify("That run already ended. Start a new game.")
			continue
		}
		return gs, nil
	}
}

func pickProfession(ui *console.Console) (state.Profession, error) {
	items := make([]string, len(state.Professions))
	for i, p := range state.Professions {
		items[i] = string(p)
	}

	idx, err := ui.Pick("Choose your engineering background:", items)
	if err != nil {
		return "", err
	}
	return state.Professions[idx], nil
}
