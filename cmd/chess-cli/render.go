package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/game"
)

// Highlights are squares drawn with emphasis on top of the position.
type Highlights struct {
	Marked   []chess.Square
	Checkers []chess.Square
	Pinned   []chess.Square
}

// Renderer draws boards and status lines to a terminal.
type Renderer struct {
	out       io.Writer
	white     *color.Color
	black     *color.Color
	highlight *color.Color
	check     *color.Color
	checker   *color.Color
	pinned    *color.Color
	status    *color.Color
	warn      *color.Color
}

// NewRenderer creates a renderer. With useColour false every escape code
// is suppressed.
func NewRenderer(out io.Writer, useColour bool) *Renderer {
	r := &Renderer{
		out:       out,
		white:     color.New(color.FgHiWhite, color.Bold),
		black:     color.New(color.FgHiBlue, color.Bold),
		highlight: color.New(color.BgYellow, color.FgBlack),
		check:     color.New(color.BgRed, color.FgHiWhite),
		checker:   color.New(color.BgMagenta, color.FgHiWhite),
		pinned:    color.New(color.BgCyan, color.FgBlack),
		status:    color.New(color.FgGreen),
		warn:      color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.white, r.black, r.highlight, r.check, r.checker, r.pinned, r.status, r.warn} {
		if useColour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) pieceText(p *chess.Piece) string {
	if p == nil {
		return "."
	}
	if p.Colour == chess.White {
		return r.white.Sprint(string(p.Letter()))
	}
	return r.black.Sprint(string(p.Letter()))
}

// Board draws the position from White's side. The checked king, pieces
// giving check, pinned pieces, the last move's squares and any marked
// squares are highlighted in that order of precedence. Checkers and pins
// are also listed below the board.
func (r *Renderer) Board(s game.Snapshot, h Highlights) {
	marks := squareSet(h.Marked)
	if s.HasLastMove {
		marks[s.LastMove.From] = true
		marks[s.LastMove.To] = true
	}
	checkers := squareSet(h.Checkers)
	pinned := squareSet(h.Pinned)

	for row := 0; row < chess.BoardSize; row++ {
		var line strings.Builder
		fmt.Fprintf(&line, "%d ", chess.BoardSize-row)
		for col := 0; col < chess.BoardSize; col++ {
			sq := chess.Sq(row, col)
			p := s.Board.Get(sq)
			cell := r.pieceText(p)
			switch {
			case s.InCheck && p != nil && p.Kind == chess.King && p.Colour == s.Mover:
				cell = r.check.Sprint(string(p.Letter()))
			case p != nil && checkers[sq]:
				cell = r.checker.Sprint(string(p.Letter()))
			case p != nil && pinned[sq]:
				cell = r.pinned.Sprint(string(p.Letter()))
			case marks[sq]:
				if p == nil {
					cell = r.highlight.Sprint("*")
				} else {
					cell = r.highlight.Sprint(string(p.Letter()))
				}
			}
			line.WriteString(cell)
			if col < chess.BoardSize-1 {
				line.WriteByte(' ')
			}
		}
		fmt.Fprintln(r.out, line.String())
	}
	fmt.Fprintln(r.out, "  a b c d e f g h")

	if len(h.Checkers) > 0 {
		r.warn.Fprintf(r.out, "check from %s\n", squareList(h.Checkers))
	}
	if len(h.Pinned) > 0 {
		r.Line("pinned %s", squareList(h.Pinned))
	}
}

func squareSet(squares []chess.Square) map[chess.Square]bool {
	set := make(map[chess.Square]bool, len(squares)+2)
	for _, sq := range squares {
		set[sq] = true
	}
	return set
}

// squareList joins sorted square names with spaces.
func squareList(squares []chess.Square) string {
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// Status prints the outcome or whose move it is.
func (r *Renderer) Status(s game.Snapshot) {
	if s.Outcome.IsTerminal() {
		r.status.Fprintf(r.out, "Game over: %s (%s)\n", s.Outcome, s.Outcome.Result())
		return
	}
	suffix := ""
	if s.InCheck {
		suffix = ", in check"
	}
	r.status.Fprintf(r.out, "Move %d, %s to play%s\n", s.MoveNumber, s.Mover, suffix)
}

// Error prints a rejected command.
func (r *Renderer) Error(err error) {
	r.warn.Fprintf(r.out, "error: %v\n", err)
}

// Line prints plain text.
func (r *Renderer) Line(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
