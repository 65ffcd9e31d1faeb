package game

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chess-core-go/internal/chess"
	"github.com/lgbarn/chess-core-go/internal/config"
	"github.com/lgbarn/chess-core-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-core-go/internal/errors"
	"github.com/lgbarn/chess-core-go/internal/testutil"
)

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, text := range moves {
		require.NoError(t, g.Play(testutil.MustMove(t, text)), "move %s", text)
	}
}

func mustFEN(t *testing.T, fen string, opts ...Option) *Game {
	t.Helper()
	g, err := NewFromFEN(fen, opts...)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	g := New()

	assert.NotEmpty(t, g.ID())
	assert.Equal(t, chess.White, g.Mover())
	assert.Equal(t, Outcome{Status: InProgress}, g.Outcome())
	assert.Len(t, g.Pieces(), 32)
	assert.Equal(t, 1, g.RepetitionCount())
	_, ok := g.LastMove()
	assert.False(t, ok)
	assert.Equal(t, engine.InitialFEN, g.FEN())
	assert.Len(t, g.LegalMoves(), 20)
}

func TestFoolsMate(t *testing.T) {
	g := New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	out := g.Outcome()
	assert.Equal(t, Checkmate, out.Status)
	assert.Equal(t, chess.Black, out.Winner)
	assert.Equal(t, "0-1", out.Result())
	assert.True(t, g.InCheck())
	assert.True(t, engine.IsCheckmate(g.Board(), chess.White))

	err := g.ApplyMove(testutil.MustSquare(t, "a2"), testutil.MustSquare(t, "a3"))
	assert.ErrorIs(t, err, chesserrors.ErrGameAlreadyOver)
	assert.ErrorIs(t, g.AgreeDraw(), chesserrors.ErrGameAlreadyOver)
	assert.Nil(t, g.LegalMoves())
}

func TestTurnAlternation(t *testing.T) {
	g := New()
	want := []chess.Colour{chess.Black, chess.White, chess.Black}

	for i, text := range []string{"e2e4", "e7e5", "d1h5"} {
		play(t, g, text)
		assert.Equal(t, want[i], g.Mover(), "after %s", text)
		last, ok := g.LastMove()
		require.True(t, ok)
		assert.Equal(t, text, last.String())
	}
	assert.Equal(t, Outcome{Status: InProgress}, g.Outcome())
	assert.Equal(t, 2, g.Snapshot().MoveNumber)
}

func TestRejectedMovesLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		from    chess.Square
		to      chess.Square
		wantErr error
	}{
		{"off the board", chess.Sq(6, 4), chess.Sq(8, 4), chesserrors.ErrOutOfBounds},
		{"negative start", chess.Sq(-1, 0), chess.Sq(4, 4), chesserrors.ErrOutOfBounds},
		{"empty start", chess.Sq(4, 4), chess.Sq(3, 4), chesserrors.ErrNoPieceAtStart},
		{"opponent piece", chess.Sq(1, 3), chess.Sq(3, 3), chesserrors.ErrNotYourPiece},
		{"bad geometry", chess.Sq(6, 3), chess.Sq(3, 3), chesserrors.ErrIllegalMove},
		{"blocked path", chess.Sq(7, 0), chess.Sq(5, 0), chesserrors.ErrIllegalMove},
		{"self capture", chess.Sq(7, 3), chess.Sq(6, 3), chesserrors.ErrIllegalMove},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			play(t, g, "e2e3", "e7e6")
			before := g.Snapshot()
			history := g.History()

			err := g.ApplyMove(tt.from, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var moveErr *chesserrors.MoveError
			require.True(t, errors.As(err, &moveErr))
			assert.Equal(t, 3, moveErr.Ply)
			assert.Equal(t, before.ID, moveErr.GameID)

			assert.Equal(t, before, g.Snapshot())
			assert.Equal(t, history, g.History())
		})
	}
}

func TestRejectionClassesMatchIllegalMove(t *testing.T) {
	g := New()
	err := g.ApplyMove(testutil.MustSquare(t, "e4"), testutil.MustSquare(t, "e5"))
	assert.ErrorIs(t, err, chesserrors.ErrIllegalMove)
	err = g.ApplyMove(testutil.MustSquare(t, "e7"), testutil.MustSquare(t, "e5"))
	assert.ErrorIs(t, err, chesserrors.ErrIllegalMove)
}

func TestPinnedPieceCannotExposeKing(t *testing.T) {
	g := mustFEN(t, "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1")
	before := g.Snapshot()

	err := g.ApplyMove(testutil.MustSquare(t, "e2"), testutil.MustSquare(t, "c3"))
	assert.ErrorIs(t, err, chesserrors.ErrIllegalMove)
	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, []engine.Pin{{Square: chess.Sq(6, 4), Direction: engine.Direction{DRow: -1, DCol: 0}}}, g.Pins())
}

func TestEnPassant(t *testing.T) {
	t.Run("on the next half-move", func(t *testing.T) {
		g := New()
		play(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "e5d6")

		b := g.Board()
		assert.Nil(t, b.Get(testutil.MustSquare(t, "d5")), "captured pawn removed")
		assert.Equal(t, chess.Pawn, b.Get(testutil.MustSquare(t, "d6")).Kind)

		last := g.History()[4]
		assert.True(t, last.EnPassant)
		require.NotNil(t, last.Captured)
		assert.Equal(t, chess.Pawn, *last.Captured)
		assert.Equal(t, 0, g.HalfmoveClock())
	})

	t.Run("not one move later", func(t *testing.T) {
		g := New()
		play(t, g, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "a6a5")

		err := g.ApplyMove(testutil.MustSquare(t, "e5"), testutil.MustSquare(t, "d6"))
		assert.ErrorIs(t, err, chesserrors.ErrIllegalMove)
	})
}

func TestCastling(t *testing.T) {
	t.Run("both sides", func(t *testing.T) {
		g := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, g, "e1g1", "e8c8")

		b := g.Board()
		assert.Equal(t, chess.King, b.Get(testutil.MustSquare(t, "g1")).Kind)
		assert.Equal(t, chess.Rook, b.Get(testutil.MustSquare(t, "f1")).Kind)
		assert.Nil(t, b.Get(testutil.MustSquare(t, "h1")))
		assert.Equal(t, chess.King, b.Get(testutil.MustSquare(t, "c8")).Kind)
		assert.Equal(t, chess.Rook, b.Get(testutil.MustSquare(t, "d8")).Kind)
		assert.Nil(t, b.Get(testutil.MustSquare(t, "a8")))
		assert.True(t, b.Get(testutil.MustSquare(t, "d8")).HasMoved)

		h := g.History()
		assert.Equal(t, engine.Kingside, h[0].Castle)
		assert.Equal(t, engine.Queenside, h[1].Castle)
	})

	t.Run("rook moved and returned", func(t *testing.T) {
		g := mustFEN(t, "r3k2r/p7/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, g, "h1h2", "a7a6", "h2h1", "a6a5")

		err := g.ApplyMove(testutil.MustSquare(t, "e1"), testutil.MustSquare(t, "g1"))
		assert.ErrorIs(t, err, chesserrors.ErrIllegalMove)
		play(t, g, "e1c1")
	})

	t.Run("king moved and returned", func(t *testing.T) {
		g := mustFEN(t, "r3k2r/p7/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, g, "e1e2", "a7a6", "e2e1", "a6a5")

		for _, to := range []string{"g1", "c1"} {
			err := g.ApplyMove(testutil.MustSquare(t, "e1"), testutil.MustSquare(t, to))
			assert.ErrorIs(t, err, chesserrors.ErrIllegalMove, "e1%s", to)
		}
		assert.Equal(t, chess.White, g.Mover())
		assert.Equal(t, chess.King, g.Board().Get(testutil.MustSquare(t, "e1")).Kind)
	})

	t.Run("through an attacked square", func(t *testing.T) {
		g := mustFEN(t, "4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
		err := g.ApplyMove(testutil.MustSquare(t, "e1"), testutil.MustSquare(t, "g1"))
		assert.ErrorIs(t, err, chesserrors.ErrIllegalMove)
	})
}

func TestPromotion(t *testing.T) {
	const fen = "8/4P3/8/8/8/8/k6p/4K3 w - - 0 1"
	e7 := chess.Sq(1, 4)
	e8 := chess.Sq(0, 4)

	t.Run("default queen", func(t *testing.T) {
		g := mustFEN(t, fen)
		require.NoError(t, g.ApplyMove(e7, e8))

		p := g.Board().Get(e8)
		assert.Equal(t, chess.Queen, p.Kind)
		assert.True(t, p.HasMoved)
		last, _ := g.LastMove()
		assert.Equal(t, "e7e8q", last.String())
		assert.True(t, g.History()[0].Promotion)
	})

	t.Run("chooser is asked", func(t *testing.T) {
		var got []chess.Kind
		var colour chess.Colour
		g := mustFEN(t, fen, WithPromoter(PromoterFunc(func(c chess.Colour, candidates []chess.Kind) chess.Kind {
			colour = c
			got = candidates
			return chess.Knight
		})))
		require.NoError(t, g.ApplyMove(e7, e8))

		assert.Equal(t, chess.PromotionKinds, got)
		assert.Equal(t, chess.White, colour)
		assert.Equal(t, chess.Knight, g.Board().Get(e8).Kind)
	})

	t.Run("suffix wins over chooser", func(t *testing.T) {
		g := mustFEN(t, fen, WithPromoter(PromoterFunc(func(chess.Colour, []chess.Kind) chess.Kind {
			t.Error("promoter called despite explicit choice")
			return chess.Queen
		})))
		play(t, g, "e7e8r")
		assert.Equal(t, chess.Rook, g.Board().Get(e8).Kind)
	})

	t.Run("invalid choice becomes queen", func(t *testing.T) {
		g := mustFEN(t, fen, WithPromoter(PromoterFunc(func(chess.Colour, []chess.Kind) chess.Kind {
			return chess.King
		})))
		require.NoError(t, g.ApplyMove(e7, e8))
		assert.Equal(t, chess.Queen, g.Board().Get(e8).Kind)
	})

	t.Run("non promotion ignores kind", func(t *testing.T) {
		g := New()
		require.NoError(t, g.ApplyMoveWithPromotion(chess.Sq(6, 4), chess.Sq(4, 4), chess.Knight))
		assert.Equal(t, chess.Pawn, g.Board().Get(chess.Sq(4, 4)).Kind)
	})
}

func TestStalemate(t *testing.T) {
	g := mustFEN(t, "7k/8/5Q2/6K1/8/8/8/8 w - - 0 1")
	play(t, g, "f6f7")

	assert.Equal(t, Outcome{Status: Stalemate}, g.Outcome())
	assert.False(t, g.InCheck())
	assert.Equal(t, "1/2-1/2", g.Outcome().Result())
}

func TestInsufficientMaterial(t *testing.T) {
	t.Run("king and bishop against king", func(t *testing.T) {
		g := mustFEN(t, "4k3/8/8/8/8/8/3p4/4KB2 w - - 0 1")
		assert.False(t, g.Outcome().IsTerminal())

		play(t, g, "e1d2")
		assert.Equal(t, drawBy(InsufficientMaterial), g.Outcome())
	})

	tests := []struct {
		name string
		fen  string
		want Outcome
	}{
		{"bare kings", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", drawBy(InsufficientMaterial)},
		{"minor against minor", "4kn2/8/8/8/8/8/8/4KB2 w - - 0 1", drawBy(InsufficientMaterial)},
		{"rook is enough", "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", Outcome{Status: InProgress}},
		{"two knights are enough", "4k3/8/8/8/8/8/8/3NKN2 w - - 0 1", Outcome{Status: InProgress}},
		{"bishops on one colour", "2b1k3/8/8/8/8/5B2/8/3BK3 w - - 0 1", drawBy(DeadPosition)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mustFEN(t, tt.fen).Outcome())
		})
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := New()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	play(t, g, shuffle...)
	assert.Equal(t, 2, g.RepetitionCount())
	play(t, g, shuffle[:3]...)
	assert.False(t, g.Outcome().IsTerminal())

	play(t, g, shuffle[3])
	assert.Equal(t, drawBy(ThreefoldRepetition), g.Outcome())
	assert.Equal(t, 3, g.RepetitionCount())
}

func TestFiftyMoveRule(t *testing.T) {
	g := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 97 1")

	play(t, g, "a1a2")
	assert.Equal(t, 98, g.HalfmoveClock())
	play(t, g, "e8d8")
	assert.Equal(t, 99, g.HalfmoveClock())
	assert.False(t, g.Outcome().IsTerminal(), "no draw at 99")

	play(t, g, "a2a3")
	assert.Equal(t, 100, g.HalfmoveClock())
	assert.Equal(t, drawBy(FiftyMoveRule), g.Outcome())
}

func TestHalfmoveClockPolicy(t *testing.T) {
	moves := []string{"g1f3", "b8c6", "e2e4"}

	g := New()
	play(t, g, moves[:2]...)
	assert.Equal(t, 2, g.HalfmoveClock())
	play(t, g, moves[2])
	assert.Equal(t, 0, g.HalfmoveClock(), "pawn move resets")

	cfg := config.NewConfigBuilder().WithLiteralHalfmoveClock(true).WithLogFile(nil).Build()
	literal := New(WithConfig(cfg))
	play(t, literal, moves...)
	assert.Equal(t, 3, literal.HalfmoveClock(), "literal clock never resets")
}

func TestWithConfig_ZeroLimitsUseDefaults(t *testing.T) {
	cfg := config.NewConfigBuilder().WithLogFile(nil).Build()
	cfg.Rules = &config.RulesConfig{}

	g := New(WithConfig(cfg))
	assert.Equal(t, config.DefaultRepetitionLimit, g.rules.RepetitionLimit)
	assert.Equal(t, config.DefaultFiftyMoveLimit, g.rules.FiftyMoveLimit)
	assert.False(t, g.Outcome().IsTerminal())

	play(t, g, "g1f3")
	assert.False(t, g.Outcome().IsTerminal())
}

func TestAgreeDraw(t *testing.T) {
	g := New()
	v := g.Version()
	require.NoError(t, g.AgreeDraw())

	assert.Equal(t, drawBy(Agreement), g.Outcome())
	assert.Greater(t, g.Version(), v)
	assert.ErrorIs(t, g.ApplyMove(chess.Sq(6, 4), chess.Sq(4, 4)), chesserrors.ErrGameAlreadyOver)
	assert.Nil(t, g.ValidMoves(chess.Sq(6, 4)))
}

func TestReset(t *testing.T) {
	g := New()
	id := g.ID()
	play(t, g, "e2e4", "e7e5")
	require.NoError(t, g.AgreeDraw())
	v := g.Version()

	g.Reset()

	s := g.Snapshot()
	assert.NotEqual(t, id, s.ID)
	assert.Greater(t, s.Version, v)
	assert.Equal(t, chess.White, s.Mover)
	assert.Equal(t, 0, s.Ply)
	assert.Equal(t, Outcome{Status: InProgress}, s.Outcome)
	assert.True(t, s.Board.Equal(chess.NewInitialBoard()))
	assert.Empty(t, g.History())
}

func TestValidMovesView(t *testing.T) {
	g := New()

	assert.Equal(t, []string{"e3", "e4"}, testutil.SquareNames(g.ValidMoves(testutil.MustSquare(t, "e2"))))
	assert.Nil(t, g.ValidMoves(testutil.MustSquare(t, "e7")), "opponent piece")
	assert.Nil(t, g.ValidMoves(testutil.MustSquare(t, "e4")), "empty square")
}

func TestSnapshotIsACopy(t *testing.T) {
	g := New()
	s := g.Snapshot()
	s.Board.Set(testutil.MustSquare(t, "e2"), nil)

	assert.NotNil(t, g.Board().Get(testutil.MustSquare(t, "e2")))
	assert.Equal(t, engine.InitialFEN, s.FEN)
	assert.InDelta(t, 0, s.Evaluation, 1e-9)
	assert.InDelta(t, g.Evaluate(), s.Evaluation, 1e-9)
	assert.InDelta(t, 39.5, s.WhiteMaterial, 1e-9)
	assert.InDelta(t, 39.5, s.BlackMaterial, 1e-9)
}

func TestSnapshotMaterialAfterCapture(t *testing.T) {
	g := New()
	play(t, g, "e2e4", "d7d5", "e4d5")

	s := g.Snapshot()
	assert.InDelta(t, 39.5, s.WhiteMaterial, 1e-9)
	assert.InDelta(t, 38.5, s.BlackMaterial, 1e-9)
}

func TestChecksView(t *testing.T) {
	g := mustFEN(t, "4k3/8/8/8/1b6/8/5p2/4K3 w - - 0 1")
	assert.True(t, g.InCheck())
	assert.Equal(t, []string{"b4", "f2"}, testutil.SquareNames(g.Checks()))
}

func TestApplyIfVersion(t *testing.T) {
	g := New()
	v := g.Version()
	m := testutil.MustMove(t, "e2e4")

	ok, err := g.ApplyIfVersion(m, v+1)
	require.NoError(t, err)
	assert.False(t, ok, "stale version")

	ok, err = g.ApplyIfVersion(m, v)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.ApplyIfVersion(testutil.MustMove(t, "e2e4"), g.Version())
	assert.False(t, ok)
	assert.ErrorIs(t, err, chesserrors.ErrNoPieceAtStart)
}

func TestNewFromFEN_Invalid(t *testing.T) {
	_, err := NewFromFEN("not a fen")
	assert.ErrorIs(t, err, chesserrors.ErrInvalidFEN)
}

func TestNewFromFEN_AlreadyMated(t *testing.T) {
	g := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.Equal(t, checkmateBy(chess.Black), g.Outcome())
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	g := New(WithLogFile(&buf))
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	out := buf.String()
	assert.Contains(t, out, g.ID())
	assert.Contains(t, out, "ply 1 White f2f3")
	assert.Contains(t, out, "checkmate, Black wins 0-1")
}

func TestConcurrentApplyMove(t *testing.T) {
	g := New()
	from := testutil.MustSquare(t, "e2")
	to := testutil.MustSquare(t, "e4")

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.ApplyMove(from, to) == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
			_ = g.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, g.Snapshot().Ply)
}
