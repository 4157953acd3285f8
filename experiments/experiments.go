package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"uctgo/engine"
	"uctgo/experiments/metrics"
	"uctgo/game"
	"uctgo/searcher"
	"uctgo/searcher/agent"
)

// Settings shared by every game of an experiment.
type Settings struct {
	OutputDir   string
	BoardSize   int
	Komi        float64
	MaxTurns    int
	Simulations int
	Seed        uint64 // 0 leaves every search to a fresh seed
	Games       int    // per match up
	Concurrency int    // games played at the same time
	Goroutines  []int
}

type matchUp struct {
	black, white metrics.AgentConfig
}

// RunThroughput pairs each goroutine count with itself, so both sides play at the
// same strength and games have similar lengths, and records search throughput.
// It returns the directory holding the CSV results.
func RunThroughput(ctx context.Context, s Settings) (string, error) {
	configs := searchConfigs(s, 1)
	matchUps := lo.Map(configs, func(c metrics.AgentConfig, _ int) matchUp {
		return matchUp{black: c, white: c}
	})
	return runExperiment(ctx, "parallelization_to_throughput", s, configs, matchUps)
}

// RunStrength pairs each goroutine count against the sequential baseline with the
// same budget, alternating the starting side.
func RunStrength(ctx context.Context, s Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Simulations: s.Simulations, Seed: s.Seed}
	configs := searchConfigs(s, 1)

	var matchUps []matchUp
	for _, config := range configs {
		matchUps = append(matchUps, matchUp{black: baseline, white: config}, matchUp{black: config, white: baseline})
	}
	return runExperiment(ctx, "parallelization_to_strength", s, append([]metrics.AgentConfig{baseline}, configs...), matchUps)
}

func searchConfigs(s Settings, firstID int) []metrics.AgentConfig {
	return lo.Map(s.Goroutines, func(goroutines int, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: firstID + i, Goroutines: goroutines, Simulations: s.Simulations, Seed: s.Seed}
	})
}

func runExperiment(ctx context.Context, name string, s Settings, configs []metrics.AgentConfig, matchUps []matchUp) (string, error) {
	if s.Games <= 0 || s.Concurrency <= 0 {
		panic("experiment needs a positive number of games and concurrency")
	}
	log.Info().Msgf("starting %s experiment: %d match ups of %d games", name, len(matchUps), s.Games)

	total := len(matchUps) * s.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for mi, m := range matchUps {
		for i := 0; i < s.Games; i++ {
			id := mi*s.Games + i + 1
			g.Go(func() error {
				winner, gameMetric, moveMetrics, err := runGame(ctx, s, m, id)
				if err != nil {
					return fmt.Errorf("match up %d game %d: %w", mi+1, i+1, err)
				}
				gameRecords[id-1] = metrics.GameRecord{
					ID:         id,
					Agent1:     m.black.ID,
					Agent2:     m.white.ID,
					GameMetric: gameMetric,
				}
				moveRecords[id-1] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
					return metrics.MoveRecord{Game: id, MoveMetric: mm}
				})
				log.Info().Msgf("completed match up %d of %d game %d of %d with winner: %s",
					mi+1, len(matchUps), i+1, s.Games, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("%s experiment: %w", name, err)
	}
	logSummary(configs, gameRecords)
	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(s.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(lo.Flatten(moveRecords)); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame plays one game between the two agents of m.
func runGame(ctx context.Context, s Settings, m matchUp, id int) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.NewLocalEngine(
		game.NewBoard(s.BoardSize),
		createAgent(m.black, id),
		createAgent(m.white, id),
		engine.WithMaxTurns(s.MaxTurns),
		engine.WithKomi(s.Komi),
	)
	return e.Run(ctx)
}

// createAgent builds a fresh agent for one game. Fixed seeds are varied per game
// so repeated games of a match up differ.
func createAgent(config metrics.AgentConfig, gameID int) agent.Agent {
	seed := config.Seed
	if seed != 0 {
		seed = game.MixSeed(seed, uint64(config.ID), uint64(gameID))
	}
	if config.Random {
		return agent.NewRandomAgent(seed)
	}

	u := searcher.NewUCT(
		config.Goroutines,
		searcher.WithSimulations(config.Simulations),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
	return agent.NewEvaluationAgent(u)
}

func logSummary(configs []metrics.AgentConfig, records []metrics.GameRecord) {
	colors := map[string]func(metrics.GameRecord) int{
		"black": func(r metrics.GameRecord) int { return r.Agent1 },
		"white": func(r metrics.GameRecord) int { return r.Agent2 },
	}
	for _, config := range configs {
		played := lo.CountBy(records, func(r metrics.GameRecord) bool {
			return r.Agent1 != r.Agent2 && (r.Agent1 == config.ID || r.Agent2 == config.ID)
		})
		won := lo.CountBy(records, func(r metrics.GameRecord) bool {
			side, ok := colors[r.Winner]
			return ok && side(r) == config.ID && r.Agent1 != r.Agent2
		})
		log.Info().Msgf("agent %d (%d goroutines): won %d of %d games against other agents", config.ID, config.Goroutines, won, played)
	}
}
