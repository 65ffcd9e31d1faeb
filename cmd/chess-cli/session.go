package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lgbarn/chess-core-go/internal/advisor"
	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-core-go/internal/errors"
	"github.com/lgbarn/chess-core-go/internal/game"
)

// Session is one interactive game driven by text commands.
type Session struct {
	game     *game.Game
	advisor  *advisor.Advisor // nil without an engine
	render   *Renderer
	wait     time.Duration
	lastHint *advisor.Suggestion
}

// NewSession wires a game to a renderer and an optional advisor.
func NewSession(g *game.Game, adv *advisor.Advisor, r *Renderer, hintWait time.Duration) *Session {
	return &Session{game: g, advisor: adv, render: r, wait: hintWait}
}

const helpText = `Commands:
  e2e4, e7e8n    play a move (promotion suffix q, r, b or n)
  moves <sq>     list legal destinations of the piece on <sq>
  hint           ask the engine for a move
  play           play the last hint
  eval           show the position evaluation
  fen            print the position as FEN
  history        list the moves played
  board          redraw the board
  draw           agree a draw
  new            start a new game
  quit           leave`

// Run reads commands until quit or end of input.
func (s *Session) Run(in io.Reader) error {
	s.show(nil)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if s.Handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *Session) show(marked []chess.Square) {
	snap := s.game.Snapshot()
	s.render.Board(snap, s.highlights(marked))
	s.render.Status(snap)
}

// highlights collects the checking and pinned pieces of the side to move.
func (s *Session) highlights(marked []chess.Square) Highlights {
	h := Highlights{Marked: marked, Checkers: s.game.Checks()}
	for _, pin := range s.game.Pins() {
		h.Pinned = append(h.Pinned, pin.Square)
	}
	return h
}

// Handle executes one command line and reports whether to quit.
func (s *Session) Handle(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "help", "?":
		s.render.Line(helpText)
	case "board":
		s.show(nil)
	case "fen":
		s.render.Line(s.game.FEN())
	case "eval":
		snap := s.game.Snapshot()
		s.render.Line("evaluation %+.2f (material White %.2f, Black %.2f)",
			snap.Evaluation, snap.WhiteMaterial, snap.BlackMaterial)
	case "moves":
		s.moves(fields[1:])
	case "history":
		s.history()
	case "draw":
		if err := s.game.AgreeDraw(); err != nil {
			s.render.Error(err)
			return false
		}
		s.show(nil)
	case "new":
		s.game.Reset()
		s.lastHint = nil
		s.show(nil)
	case "hint":
		s.hint()
	case "play":
		s.playHint()
	default:
		s.move(fields[0])
	}
	return false
}

func (s *Session) move(text string) {
	m, err := chess.ParseMove(text)
	if err != nil {
		s.render.Error(fmt.Errorf("unknown command %q", text))
		return
	}
	if err := s.game.Play(m); err != nil {
		s.render.Error(err)
		return
	}
	s.show(nil)
}

func (s *Session) moves(args []string) {
	if len(args) != 1 {
		s.render.Error(fmt.Errorf("usage: moves <square>"))
		return
	}
	sq, ok := chess.ParseSquare(args[0])
	if !ok {
		s.render.Error(chesserrors.Wrapf(chesserrors.ErrOutOfBounds, "square %q", args[0]))
		return
	}
	dests := s.game.ValidMoves(sq)
	s.render.Board(s.game.Snapshot(), s.highlights(dests))
	s.render.Line("%s: %s", sq, squareList(dests))
}

func (s *Session) history() {
	for _, rec := range s.game.History() {
		note := ""
		switch {
		case rec.Castle != engine.NoCastle:
			note = " " + rec.Castle.String()
		case rec.EnPassant:
			note = " e.p."
		case rec.Captured != nil:
			note = " x" + rec.Captured.String()
		}
		s.render.Line("%d. %s %s %s%s", rec.Ply, rec.Mover, rec.Piece, rec.Move, note)
	}
}

func (s *Session) hint() {
	if s.advisor == nil {
		s.render.Error(chesserrors.Wrap(chesserrors.ErrEngineUnavailable, "start with -engine"))
		return
	}
	ticket, err := s.advisor.Request(s.game)
	if err != nil {
		s.render.Error(err)
		return
	}
	timeout := time.After(s.wait)
	for {
		select {
		case sug, ok := <-s.advisor.Results():
			if !ok {
				s.render.Error(chesserrors.ErrEngineUnavailable)
				return
			}
			if sug.Ticket.ID != ticket.ID {
				continue
			}
			if !sug.OK {
				s.render.Line("no move available")
				return
			}
			s.lastHint = &sug
			s.render.Line("hint %s (%s)", sug.Move, sug.Display)
			return
		case <-timeout:
			s.render.Line("no move available")
			return
		}
	}
}

func (s *Session) playHint() {
	if s.lastHint == nil {
		s.render.Error(chesserrors.ErrNoSuggestion)
		return
	}
	hint := *s.lastHint
	s.lastHint = nil
	applied, err := s.advisor.Apply(s.game, hint)
	if err != nil {
		s.render.Error(err)
		return
	}
	if !applied {
		s.render.Line("hint is out of date")
		return
	}
	s.show(nil)
}
