// Command weakspot builds a weakness profile from a PGN file and prints it
// as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vytor/weakspot/internal/config"
	"github.com/vytor/weakspot/internal/logger"
	"github.com/vytor/weakspot/internal/pgn"
	"github.com/vytor/weakspot/internal/services"
)

type options struct {
	pgnPath  string
	player   string
	games    int
	top      int
	split    bool
	detail   bool
	logLevel string
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.pgnPath, "pgn", "-", "PGN file to read, - for stdin")
	flag.StringVar(&opts.player, "player", "", "player to profile (defaults to the first game's White)")
	flag.IntVar(&opts.games, "games", cfg.MaxGames, "analyze at most this many games")
	flag.IntVar(&opts.top, "top", cfg.TopWeaknesses, "number of weaknesses to report")
	flag.BoolVar(&opts.split, "split", cfg.PercentBase == config.PercentBaseSplit, "report kind and phase percentages separately")
	flag.BoolVar(&opts.detail, "detail", false, "include per-game reports")
	flag.StringVar(&opts.logLevel, "log-level", "WARN", "log level written to stderr")
	flag.Parse()

	logger.SetDefault(logger.New(logger.WithLevel(logger.ParseLevel(opts.logLevel))))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "weakspot: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, stdin io.Reader, stdout io.Writer) error {
	cfg.MaxGames = opts.games
	cfg.TopWeaknesses = opts.top
	cfg.PercentBase = config.PercentBaseShared
	if opts.split {
		cfg.PercentBase = config.PercentBaseSplit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	text, err := readPGN(opts.pgnPath, stdin)
	if err != nil {
		return err
	}
	games := pgn.SplitGames(text)
	if len(games) == 0 {
		return fmt.Errorf("no games found in %s", opts.pgnPath)
	}

	analyzer, err := services.NewAnalyzerFromConfig(cfg)
	if err != nil {
		return err
	}
	profileCfg, err := services.ProfileConfigFrom(cfg)
	if err != nil {
		return err
	}

	result, err := services.NewProfileService(analyzer, profileCfg).Build(ctx, games, opts.player, 0)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if opts.detail {
		return enc.Encode(result)
	}
	return enc.Encode(result.Profile)
}

func readPGN(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
