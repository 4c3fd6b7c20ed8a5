package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	hudRows    = 7 // lines above the map
	cellWidth  = 2 // map cells are drawn a column apart
	maxMessage = 6 // narration lines kept on screen
	separator  = "-------------------------"
)

// Renderer handles drawing the game to the screen. It implements
// game.Presenter.
type Renderer struct {
	screen   *Screen
	session  *game.Session
	messages []string
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Present draws the session with the report's narration underneath.
func (r *Renderer) Present(s *game.Session, report game.Report) {
	r.session = s
	r.messages = append(r.messages, Narrate(s, report)...)
	if len(r.messages) > maxMessage {
		r.messages = r.messages[len(r.messages)-maxMessage:]
	}
	r.draw("")
}

// ShowPrompt redraws the last frame with a yes/no question at the bottom.
func (r *Renderer) ShowPrompt(p game.Prompt) {
	r.draw(PromptText(p))
}

func (r *Renderer) draw(prompt string) {
	r.screen.Clear()

	y := 0
	s := r.session
	if s != nil && s.Player != nil {
		for _, line := range HUDLines(s) {
			r.screen.DrawText(0, y, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
			y++
		}
		if s.Dungeon != nil {
			r.drawMap(s, y)
			y += s.Dungeon.Size
		}
		y++
		if line := encounterLine(s); line != "" {
			r.screen.DrawText(0, y, line, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
			y++
		}
	}

	for _, msg := range r.messages {
		r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		y++
	}
	y++

	footer := prompt
	if footer == "" && s != nil {
		footer = HelpText(s)
	}
	r.screen.DrawText(0, y, footer, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	r.screen.Show()
}

// drawMap draws the tiles, then unopened chests, live opponents and the
// player on top.
func (r *Renderer) drawMap(s *game.Session, top int) {
	d := s.Dungeon
	for row := 0; row < d.Size; row++ {
		for col := 0; col < d.Size; col++ {
			tile := d.TileAt(row, col)
			r.screen.SetContent(col*cellWidth, top+row, tile.Rune(), r.getTileStyle(tile))
		}
	}

	chestStyle := tcell.StyleDefault.Foreground(tcell.ColorGold)
	for _, c := range s.Chests {
		if !c.Opened {
			r.screen.SetContent(c.Col*cellWidth, top+c.Row, 'C', chestStyle)
		}
	}

	for _, o := range s.LiveOpponents() {
		style := tcell.StyleDefault.Foreground(o.Color())
		r.screen.SetContent(o.Col*cellWidth, top+o.Row, o.Symbol, style)
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(s.Player.Col*cellWidth, top+s.Player.Row, s.Player.Symbol, playerStyle)
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileEntrance:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TileExit:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// HUDLines returns the status block drawn above the map.
func HUDLines(s *game.Session) []string {
	p := s.Player
	lines := make([]string, 0, hudRows)

	lines = append(lines, "Player: "+p.Name)
	implement := "none"
	if p.Implement != nil {
		implement = p.Implement.Name
	}
	lines = append(lines, "Implement: "+implement)
	lines = append(lines, fmt.Sprintf("Level: %d", s.Level))

	status := ""
	if c := p.GetCondition(); c.Active() {
		status = fmt.Sprintf("Status: %s (%s)", c.Kind, plural(c.Duration, "turn", "turns"))
	}
	lines = append(lines, status)

	hearts := strings.TrimSpace(strings.Repeat("♥ ", p.GetHP()))
	lines = append(lines, fmt.Sprintf("Health: %s (%d/%d)", hearts, p.GetHP(), p.GetMaxHP()))
	lines = append(lines, fmt.Sprintf("Enemies remaining: %d", len(s.LiveOpponents())))
	lines = append(lines, separator)
	return lines
}

// encounterLine shows both sides' health while an opponent is engaged.
func encounterLine(s *game.Session) string {
	if s.Phase != game.PhaseEncounter || s.Engaged == nil {
		return ""
	}
	return fmt.Sprintf("Your Health: %d | %s Health: %d", s.Player.GetHP(), s.Engaged.Name, s.Engaged.GetHP())
}

var _ game.Presenter = (*Renderer)(nil)
