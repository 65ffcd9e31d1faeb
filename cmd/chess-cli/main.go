// chess-cli plays a game of chess in the terminal, with optional hints
// from a UCI engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/lgbarn/chess-core-go/internal/advisor"
	"github.com/lgbarn/chess-core-go/internal/config"
	"github.com/lgbarn/chess-core-go/internal/game"
	"github.com/lgbarn/chess-core-go/internal/uci"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("chess-cli version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := applyFlags(config.NewConfigBuilder())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if closer := setupLogFile(cfg); closer != nil {
		defer closer.Close()
	}

	g, err := newGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	adv := startAdvisor(cfg)
	if adv != nil {
		defer func() {
			if err := adv.Close(); err != nil {
				fmt.Fprintf(cfg.Log(), "close advisor: %v\n", err)
			}
		}()
	}

	renderer := NewRenderer(os.Stdout, !*noColour && !color.NoColor)
	session := NewSession(g, adv, renderer, cfg.Engine.Timeout)
	if err := session.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
}

// setupLogFile opens the -l or -L log file. It returns the file so main
// can close it.
func setupLogFile(cfg *config.Config) io.Closer {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
		return file
	}
	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
		return file
	}
	return nil
}

func newGame(cfg *config.Config) (*game.Game, error) {
	opts := []game.Option{game.WithConfig(cfg)}
	if *fenFlag != "" {
		return game.NewFromFEN(*fenFlag, opts...)
	}
	return game.New(opts...), nil
}

// startAdvisor launches the engine when one is configured. Failure to
// start is logged and play continues without hints.
func startAdvisor(cfg *config.Config) *advisor.Advisor {
	if !cfg.Engine.Enabled {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Engine.Timeout)
	defer cancel()

	eng, err := uci.Start(ctx, cfg.Engine.Path,
		uci.WithArgs(cfg.Engine.Args...),
		uci.WithMoveTime(cfg.Engine.MoveTime),
		uci.WithDepth(cfg.Engine.Depth),
		uci.WithLogFile(cfg.Log()))
	if err != nil {
		fmt.Fprintf(cfg.Log(), "engine unavailable, hints disabled: %v\n", err)
		return nil
	}
	return advisor.New(eng, cfg)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-cli [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess in the terminal. Moves are typed as e2e4, promotions as e7e8n.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\n%s\n", helpText)
}
