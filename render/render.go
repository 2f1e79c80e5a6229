package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/hoshinonyaruko/snake-in-term/structs"
)

const (
	// ClearScreen homes the cursor and drops the scrollback without erasing,
	// so the banner beside the board survives every frame.
	ClearScreen = "\x1b[H\x1b[3J"
	// ResetScreen also erases the visible screen.
	ResetScreen = "\x1b[H\x1b[2J\x1b[3J"
)

// Lines end in CRLF so frames stay aligned when the tty is in raw mode.
const eol = "\r\n"

// Theme is the set of glyphs a frame is drawn with.
type Theme struct {
	Snake   rune
	Food    rune
	Empty   rune
	BorderH rune
	BorderV rune
}

// DefaultTheme draws the snake as '*', food as '@' and a '-' / '|' border.
var DefaultTheme = Theme{Snake: '*', Food: '@', Empty: ' ', BorderH: '-', BorderV: '|'}

// Renderer writes frames to w. Write errors are ignored.
type Renderer struct {
	w     io.Writer
	theme Theme
}

func New(w io.Writer, theme Theme) *Renderer {
	return &Renderer{w: w, theme: theme}
}

// SetTheme swaps the glyphs used by the next frame.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

func (r *Renderer) Clear() {
	io.WriteString(r.w, ClearScreen)
}

// Reset erases everything, for use once before the banner.
func (r *Renderer) Reset() {
	io.WriteString(r.w, ResetScreen)
}

// Banner prints the controls, indented one column past the right edge of the frame.
func (r *Renderer) Banner(size structs.Size) {
	var b strings.Builder
	indent := strings.Repeat(" ", r.Width(size)+1)
	for _, line := range []string{"Hit a key -- ESC key pause", "Move -- WASD"} {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString(eol)
	}
	b.WriteString(eol)
	io.WriteString(r.w, b.String())
}

// Frame prints the bordered board, the score line and a blank separator.
func (r *Renderer) Frame(board structs.Board, size structs.Size, score int) {
	var b strings.Builder
	border := strings.Repeat(string(r.theme.BorderH), size.Cols+2)

	b.WriteString(border)
	b.WriteString(eol)
	for _, row := range board {
		b.WriteRune(r.theme.BorderV)
		for _, c := range row {
			b.WriteRune(r.glyph(c))
		}
		b.WriteRune(r.theme.BorderV)
		b.WriteString(eol)
	}
	b.WriteString(border)
	b.WriteString(eol)
	fmt.Fprintf(&b, "Score: %d%s", score, eol)
	b.WriteString(eol)

	io.WriteString(r.w, b.String())
}

// GameOver prints the final banner.
func (r *Renderer) GameOver(score int) {
	fmt.Fprintf(r.w, "%sGame Over!%sFinal Score: %d%s%s", eol, eol, score, eol, eol)
}

func (r *Renderer) glyph(c structs.Cell) rune {
	switch c {
	case structs.SnakeCell:
		return r.theme.Snake
	case structs.FoodCell:
		return r.theme.Food
	default:
		return r.theme.Empty
	}
}

// Width is the number of terminal columns a frame of size occupies.
func (r *Renderer) Width(size structs.Size) int {
	return runewidth.RuneWidth(r.theme.BorderV)*2 + size.Cols*runewidth.RuneWidth(r.theme.Empty)
}
