package uci

import (
	"testing"
	"time"
)

func TestFormatEvaluation(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want string
	}{
		{"positive centipawns", &Evaluation{Score: 123}, "+1.23"},
		{"negative centipawns", &Evaluation{Score: -45}, "-0.45"},
		{"zero", &Evaluation{}, "+0.00"},
		{"large", &Evaluation{Score: 1250}, "+12.50"},
		{"small negative", &Evaluation{Score: -8}, "-0.08"},
		{"minus one pawn", &Evaluation{Score: -100}, "-1.00"},
		{"mate in one", &Evaluation{IsMate: true, MateIn: 1}, "+M1"},
		{"mated in five", &Evaluation{IsMate: true, MateIn: -5}, "-M5"},
		{"mate outranks score", &Evaluation{Score: 300, IsMate: true, MateIn: 15}, "+M15"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatEvaluation(tt.eval); got != tt.want {
				t.Errorf("FormatEvaluation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name  string
		start Evaluation
		line  string
		want  Evaluation
	}{
		{
			name: "depth and cp",
			line: "info depth 20 seldepth 25 multipv 1 score cp 125 nodes 123456",
			want: Evaluation{Depth: 20, Score: 125},
		},
		{
			name: "negative cp",
			line: "info depth 18 score cp -50 nodes 200000",
			want: Evaluation{Depth: 18, Score: -50},
		},
		{
			name: "mate",
			line: "info depth 18 seldepth 12 multipv 1 score mate 7 nodes 500000 pv e1g1",
			want: Evaluation{Depth: 18, IsMate: true, MateIn: 7},
		},
		{
			name: "being mated",
			line: "info depth 20 score mate -3 nodes 300000",
			want: Evaluation{Depth: 20, IsMate: true, MateIn: -3},
		},
		{
			name:  "cp after mate clears mate",
			start: Evaluation{IsMate: true, MateIn: 2},
			line:  "info depth 9 score cp 15",
			want:  Evaluation{Depth: 9, Score: 15},
		},
		{
			name:  "no score keeps previous values",
			start: Evaluation{Depth: 10, Score: 50, BestMove: "e2e4"},
			line:  "info nodes 100000 time 500",
			want:  Evaluation{Depth: 10, Score: 50, BestMove: "e2e4"},
		},
		{
			name:  "empty line",
			start: Evaluation{Depth: 10, Score: 25},
			line:  "",
			want:  Evaluation{Depth: 10, Score: 25},
		},
		{
			name: "score without value",
			line: "info depth 10 score",
			want: Evaluation{Depth: 10},
		},
		{
			name: "depth without value",
			line: "info nodes 100000 depth",
			want: Evaluation{},
		},
		{
			name: "pv moves are not fields",
			line: "info depth 22 score cp 35 time 858 pv e2e4 e7e5 g1f3",
			want: Evaluation{Depth: 22, Score: 35},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.start
			parseInfo(tt.line, &got)
			if got != tt.want {
				t.Errorf("parseInfo(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestEvaluationPawns(t *testing.T) {
	tests := []struct {
		eval Evaluation
		want float64
	}{
		{Evaluation{Score: 150}, 1.5},
		{Evaluation{Score: -25}, -0.25},
		{Evaluation{IsMate: true, MateIn: 3}, 100},
		{Evaluation{IsMate: true, MateIn: -1}, -100},
	}
	for _, tt := range tests {
		if got := tt.eval.Pawns(); got != tt.want {
			t.Errorf("%+v.Pawns() = %v, want %v", tt.eval, got, tt.want)
		}
	}
}

func TestGoCommand(t *testing.T) {
	tests := []struct {
		name   string
		engine Engine
		limit  Limit
		want   string
	}{
		{"engine default", Engine{moveTime: time.Second}, Limit{}, "go movetime 1000"},
		{"engine depth", Engine{moveTime: time.Second, depth: 12}, Limit{}, "go depth 12"},
		{"limit movetime wins", Engine{depth: 12}, Limit{MoveTime: 250 * time.Millisecond}, "go movetime 250"},
		{"limit depth wins", Engine{moveTime: time.Second}, Limit{Depth: 4, MoveTime: time.Second}, "go depth 4"},
	}
	for i := range tests {
		tt := &tests[i]
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.engine.goCommand(tt.limit); got != tt.want {
				t.Errorf("goCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
