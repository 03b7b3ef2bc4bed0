// decide reads a position file, searches it, and writes the chosen
// action for the side to move.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/go5/bot"
	"github.com/domino14/go5/config"
	"github.com/domino14/go5/gameio"
)

func main() {
	fs := config.FlagSet("decide")
	input := fs.String("input", "input.txt", "position file to read")
	output := fs.String("output", "output.txt", "file to write the chosen action to")

	cfg := &config.Config{}
	if err := cfg.Load(fs, os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := config.NewConsoleLogger(os.Stderr, cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg, *input, *output); err != nil {
		log.Err(err).Msg("decide-failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(cfg *config.Config, input, output string) error {
	pos, err := gameio.ReadPositionFile(input)
	if err != nil {
		return err
	}
	b, err := bot.NewMinimaxBot(cfg)
	if err != nil {
		return err
	}
	ctx := log.Logger.WithContext(context.Background())
	action, err := b.Decide(ctx, pos.State(), pos.ToMove)
	if err != nil {
		return err
	}
	res := b.LastResult()
	log.Info().Str("action", action.String()).Float64("score", res.Score).
		Int("depth", res.Depth).Uint64("nodes", res.Nodes).Msg("decided")
	return gameio.WriteActionFile(output, action)
}
