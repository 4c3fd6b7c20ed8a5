package ui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/game"
)

var (
	// ErrInterrupted is returned when the player presses Ctrl-C.
	ErrInterrupted = errors.New("interrupted")
	// ErrClosed is returned once the screen stops delivering events.
	ErrClosed = errors.New("screen closed")
)

// Input reads commands and answers from the terminal. It implements
// game.Input.
type Input struct {
	screen   *Screen
	renderer *Renderer
}

// NewInput creates terminal input drawing prompts through renderer.
func NewInput(screen *Screen, renderer *Renderer) *Input {
	return &Input{screen: screen, renderer: renderer}
}

// NextCommand blocks until a key is pressed and maps it for the session's
// phase. Unmapped keys come back as game.CommandUnknown.
func (in *Input) NextCommand(ctx context.Context, s *game.Session) (game.Command, error) {
	ev, err := in.nextKey(ctx)
	if err != nil {
		return game.CommandUnknown, err
	}
	return CommandFor(ev.Key(), ev.Rune(), s), nil
}

// Confirm shows the prompt and waits for Y or N. Escape counts as no; other
// keys are ignored.
func (in *Input) Confirm(ctx context.Context, prompt game.Prompt) (bool, error) {
	in.renderer.ShowPrompt(prompt)
	for {
		ev, err := in.nextKey(ctx)
		if err != nil {
			return false, err
		}
		if ev.Key() == tcell.KeyEscape {
			return false, nil
		}
		if ev.Key() != tcell.KeyRune {
			continue
		}
		switch ev.Rune() {
		case 'y', 'Y':
			return true, nil
		case 'n', 'N':
			return false, nil
		}
	}
}

// nextKey waits for the next key event, handling resizes along the way.
func (in *Input) nextKey(ctx context.Context) (*tcell.EventKey, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch ev := in.screen.PollEvent().(type) {
		case nil:
			return nil, ErrClosed
		case *tcell.EventResize:
			in.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return nil, ErrInterrupted
			}
			return ev, nil
		}
	}
}

var _ game.Input = (*Input)(nil)
