package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"uctgo/communication"
	"uctgo/engine"
	"uctgo/experiments"
	"uctgo/game"
	"uctgo/meta"
	"uctgo/searcher"
	"uctgo/searcher/agent"
)

func main() {
	mode := flag.String("mode", "play", "One of play, serve, remote, experiment")
	configPath := flag.String("config", "", "YAML config file, defaults when empty")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines searching in parallel")
	simulations := flag.Int("simulations", meta.SIMULATIONS, "Number of simulations per move")
	seed := flag.Uint64("seed", 0, "Base seed of every search, 0 for a fresh seed")
	size := flag.Int("size", meta.BOARD_SIZE, "Board size")
	flag.Parse()

	config := meta.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = meta.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	// Flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "goroutines":
			config.Goroutines = *goroutines
		case "simulations":
			config.Simulations = *simulations
		case "seed":
			config.Seed = *seed
		case "size":
			config.BoardSize = *size
		}
	})
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "play":
		err = play(ctx, config)
	case "serve":
		err = serve(config)
	case "remote":
		err = remote(ctx, config)
	case "experiment":
		err = experiment(ctx, config)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogging(config meta.Config) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.PrettyLog {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func newSearcher(config meta.Config) *searcher.UCT {
	return searcher.NewUCT(
		config.Goroutines,
		searcher.WithSimulations(config.Simulations),
		searcher.WithSeed(config.Seed),
		searcher.WithMetrics(),
	)
}

// play runs a local self-play game and prints the final board.
func play(ctx context.Context, config meta.Config) error {
	board := game.NewBoard(config.BoardSize)
	e := engine.NewLocalEngine(
		board,
		agent.NewEvaluationAgent(newSearcher(config)),
		agent.NewEvaluationAgent(newSearcher(config)),
		engine.WithMaxTurns(config.MaxTurns),
		engine.WithKomi(config.Komi),
	)
	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return err
	}

	for _, m := range moveMetrics {
		fmt.Printf("%3d %-5s %-4s %6d simulations in %s\n", m.Step, m.Player, m.Move, m.Episodes, m.Duration.Round(time.Millisecond))
	}
	fmt.Printf("winner: %s (score %+.1f) after %d moves in %s\n",
		winner, gameMetric.Score, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
	return nil
}

func serve(config meta.Config) error {
	var a agent.Agent
	switch config.Server.Agent {
	case "random":
		a = agent.NewRandomAgent(config.Seed)
	default:
		a = agent.NewEvaluationAgent(newSearcher(config))
	}
	return agent.StartAgentServer(config.Server.Addr, a)
}

func remote(ctx context.Context, config meta.Config) error {
	if config.Remote.Black == "" || config.Remote.White == "" {
		return errors.New("remote mode needs remote.black and remote.white agent URLs")
	}
	timeout, err := time.ParseDuration(config.Remote.Timeout)
	if err != nil {
		return fmt.Errorf("bad remote timeout: %w", err)
	}

	e := engine.NewRemoteEngine(
		game.NewBoard(config.BoardSize),
		communication.NewClient(config.Remote.Black, timeout),
		communication.NewClient(config.Remote.White, timeout),
		engine.WithMaxTurns(config.MaxTurns),
		engine.WithKomi(config.Komi),
	)
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("winner: %s (score %+.1f) after %d moves\n", winner, gameMetric.Score, gameMetric.TotalMoves)
	return nil
}

func experiment(ctx context.Context, config meta.Config) error {
	settings := experiments.Settings{
		OutputDir:   config.Experiment.OutputDir,
		BoardSize:   config.BoardSize,
		Komi:        config.Komi,
		MaxTurns:    config.MaxTurns,
		Simulations: config.Simulations,
		Seed:        config.Seed,
		Games:       config.Experiment.Games,
		Concurrency: config.Experiment.Concurrency,
		Goroutines:  config.Experiment.Goroutines,
	}

	run := experiments.RunThroughput
	if config.Experiment.Name == "strength" {
		run = experiments.RunStrength
	}
	dir, err := run(ctx, settings)
	if err != nil {
		return err
	}
	fmt.Printf("results written to %s\n", dir)
	return nil
}
