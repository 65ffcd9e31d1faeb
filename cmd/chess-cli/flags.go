// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/lgbarn/chess-core-go/internal/config"
)

var (
	// Game setup
	fenFlag      = flag.String("fen", "", "Start from this FEN position instead of the initial position")
	literalClock = flag.Bool("literalclock", false, "Never reset the half-move clock on pawn moves or captures")

	// Analysis engine
	enginePath    = flag.String("engine", "", "Path to a UCI engine binary used for hints")
	engineArgs    = flag.String("engineargs", "", "Space separated arguments for the engine")
	moveTimeMs    = flag.Int("movetime", 1000, "Engine time per hint in milliseconds")
	searchDepth   = flag.Int("depth", 0, "Search to a fixed depth instead of -movetime")
	engineTimeout = flag.Duration("timeout", 10*time.Second, "Give up on a hint after this long")
	workers       = flag.Int("workers", 1, "Number of analysis workers")

	// Output
	logFile   = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	appendLog = flag.String("L", "", "Append diagnostics to this file")
	noColour  = flag.Bool("nocolor", false, "Disable coloured output")
	quiet     = flag.Bool("s", false, "Silence diagnostics")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags maps command-line flags onto a config builder.
func applyFlags(b *config.ConfigBuilder) *config.Config {
	b.WithLiteralHalfmoveClock(*literalClock).
		WithMoveTime(time.Duration(*moveTimeMs) * time.Millisecond).
		WithDepth(*searchDepth).
		WithEngineTimeout(*engineTimeout).
		WithWorkers(*workers)

	if *enginePath != "" {
		b.WithEngine(*enginePath, strings.Fields(*engineArgs)...)
	}
	if *quiet {
		b.WithLogFile(nil)
	}
	return b.Build()
}
