// autoplay plays many games between two players and prints how they did.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/go5/automatic"
	"github.com/domino14/go5/bot"
	"github.com/domino14/go5/config"
)

func main() {
	fs := config.FlagSet("autoplay")
	games := fs.Int("games", 100, "number of games to play")
	black := fs.String("black", bot.MinimaxPlayer, "black player: minimax or random")
	white := fs.String("white", bot.RandomPlayer, "white player: minimax or random")
	threads := fs.Int("threads", runtime.NumCPU(), "games played at once")
	seed := fs.Uint64("seed", 0, "seed for random players; 0 draws from system entropy")
	logfile := fs.String("logfile", "", "write one CSV line per move to this file")

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
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *games, *threads, *black, *white, *seed, *logfile); err != nil {
		log.Err(err).Msg("autoplay-failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, games, threads int,
	black, white string, seed uint64, logfile string) error {

	factory, err := automatic.NewPlayerFactory(cfg, black, white, seed)
	if err != nil {
		return err
	}

	var logChan chan string
	loggerDone := make(chan struct{})
	if logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return err
		}
		logChan = make(chan string, 100)
		go func() {
			defer close(loggerDone)
			f.WriteString("gameID,turn,player,color,action,stonediff\n")
			for msg := range logChan {
				f.WriteString(msg)
			}
			f.Close()
			log.Info().Msg("Exiting turn logger goroutine!")
		}()
	} else {
		close(loggerDone)
	}

	komi := cfg.GetFloat64(config.ConfigKomi)
	records, err := automatic.PlayGames(ctx, games, threads, komi, factory, logChan)
	if logChan != nil {
		close(logChan)
	}
	<-loggerDone
	if err != nil {
		return err
	}
	fmt.Printf("%v (black) vs %v (white)\n", black, white)
	fmt.Println(automatic.Summarize(records, komi, 95))
	return nil
}
