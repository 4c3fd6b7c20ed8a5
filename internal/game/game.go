package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

// Prompt is a yes/no question put to the player.
type Prompt int

const (
	PromptLoad Prompt = iota
	PromptSaveBeforeQuit
	PromptPlayAgain
)

// String returns the prompt's identifier.
func (p Prompt) String() string {
	switch p {
	case PromptLoad:
		return "load"
	case PromptSaveBeforeQuit:
		return "save_before_quit"
	case PromptPlayAgain:
		return "play_again"
	default:
		return "unknown"
	}
}

// Presenter shows the session after every step along with what happened.
type Presenter interface {
	Present(s *Session, report Report)
}

// Input supplies player decisions. Both methods block until the player
// answers; an error ends the game loop.
type Input interface {
	NextCommand(ctx context.Context, s *Session) (Command, error)
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

// Game connects an Engine to a player.
type Game struct {
	engine    *Engine
	presenter Presenter
	input     Input
	running   bool
}

// New creates a game loop.
func New(engine *Engine, presenter Presenter, input Input) *Game {
	return &Game{
		engine:    engine,
		presenter: presenter,
		input:     input,
	}
}

// Run plays sessions until the player declines to play again, the input
// fails or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	s, err := g.start(ctx)
	if err != nil {
		initSpan.End()
		return err
	}
	initSpan.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("session.level", s.Level),
		attribute.Int64("seed", g.engine.Seed()),
	)
	initSpan.End()

	g.running = true
	for g.running {
		if err := g.play(ctx, s); err != nil {
			return err
		}

		again, err := g.input.Confirm(ctx, PromptPlayAgain)
		if err != nil {
			return err
		}
		if !again {
			g.running = false
			continue
		}
		s = g.engine.NewSession(s.Player.Name)
	}
	return nil
}

// start offers to load the saved session. A missing save silently starts a
// new session; any other load failure is reported first.
func (g *Game) start(ctx context.Context) (*Session, error) {
	if !g.engine.Persistent() {
		return g.engine.NewSession(""), nil
	}

	load, err := g.input.Confirm(ctx, PromptLoad)
	if err != nil {
		return nil, err
	}
	if !load {
		return g.engine.NewSession(""), nil
	}

	s, err := g.engine.Load(ctx)
	if err == nil {
		report := Report{Phase: s.Phase}
		report.add(Notice{Kind: NoticeLoaded, Amount: s.Level})
		g.presenter.Present(s, report)
		return s, nil
	}

	fresh := g.engine.NewSession("")
	if !errors.Is(err, storage.ErrNotFound) {
		report := Report{Phase: fresh.Phase}
		report.add(Notice{Kind: NoticeLoadFailed, Err: err})
		g.presenter.Present(fresh, report)
	}
	return fresh, nil
}

// play runs s until it reaches PhaseGameOver.
func (g *Game) play(ctx context.Context, s *Session) error {
	for s.Phase != PhaseGameOver {
		if err := ctx.Err(); err != nil {
			return err
		}

		report, err := g.step(ctx, s)
		if err != nil {
			return err
		}
		g.presenter.Present(s, report)
	}
	return nil
}

// step advances s by one unit of work. Engine errors are already carried in
// the report's notices; only input failures are returned.
func (g *Game) step(ctx context.Context, s *Session) (Report, error) {
	if s.Phase != PhaseExploring && s.Phase != PhaseEncounter {
		report, _ := g.engine.Advance(ctx, s)
		return report, nil
	}

	cmd, err := g.input.NextCommand(ctx, s)
	if err != nil {
		return Report{}, fmt.Errorf("read command: %w", err)
	}

	var pre []Notice
	if cmd == CommandQuit && s.Phase == PhaseExploring {
		if pre, err = g.offerSave(ctx, s); err != nil {
			return Report{}, err
		}
	}

	report, _ := g.engine.Handle(ctx, s, cmd)
	report.Notices = append(pre, report.Notices...)
	return report, nil
}

// offerSave asks whether to save before quitting. A failed save is reported
// but does not stop the quit.
func (g *Game) offerSave(ctx context.Context, s *Session) ([]Notice, error) {
	if !g.engine.Persistent() {
		return nil, nil
	}
	save, err := g.input.Confirm(ctx, PromptSaveBeforeQuit)
	if err != nil {
		return nil, err
	}
	if !save {
		return nil, nil
	}
	if err := g.engine.Save(ctx, s); err != nil {
		return []Notice{{Kind: NoticeSaveFailed, Err: err}}, nil
	}
	return []Notice{{Kind: NoticeSaved}}, nil
}
