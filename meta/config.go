package meta

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"uctgo/game"
)

type Config struct {
	LogLevel  string `yaml:"log_level"`
	PrettyLog bool   `yaml:"pretty_log"`

	BoardSize   int     `yaml:"board_size"`
	Komi        float64 `yaml:"komi"`
	MaxTurns    int     `yaml:"max_turns"`
	Goroutines  int     `yaml:"goroutines"`
	Simulations int     `yaml:"simulations"`
	Seed        uint64  `yaml:"seed"` // 0 draws a fresh seed for every search

	Server ServerConfig `yaml:"server"`
	Remote RemoteConfig `yaml:"remote"`

	Experiment ExperimentConfig `yaml:"experiment"`
}

type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Agent string `yaml:"agent"` // "uct" or "random"
}

type RemoteConfig struct {
	Black   string `yaml:"black"`
	White   string `yaml:"white"`
	Timeout string `yaml:"timeout"`
}

type ExperimentConfig struct {
	Name        string `yaml:"name"` // "throughput" or "strength"
	OutputDir   string `yaml:"output_dir"`
	Games       int    `yaml:"games"`
	Concurrency int    `yaml:"concurrency"`
	Goroutines  []int  `yaml:"goroutines"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		BoardSize:   BOARD_SIZE,
		Komi:        KOMI,
		MaxTurns:    MAX_TURNS,
		Goroutines:  GO_ROUTINES,
		Simulations: SIMULATIONS,
		Server: ServerConfig{
			Addr:  ":8080",
			Agent: "uct",
		},
		Remote: RemoteConfig{
			Timeout: "5m",
		},
		Experiment: ExperimentConfig{
			Name:        "throughput",
			OutputDir:   "results",
			Games:       10,
			Concurrency: 2,
			Goroutines:  []int{1, 2, 4, 8},
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.BoardSize < game.MinBoardSize || c.BoardSize > game.MaxBoardSize {
		errs = append(errs, fmt.Errorf("board_size %d out of range [%d, %d]", c.BoardSize, game.MinBoardSize, game.MaxBoardSize))
	}
	if c.Goroutines <= 0 {
		errs = append(errs, fmt.Errorf("goroutines must be positive, got %d", c.Goroutines))
	}
	if c.Simulations < c.BoardSize*c.BoardSize {
		errs = append(errs, fmt.Errorf("simulations %d cannot visit every move of a %dx%d board", c.Simulations, c.BoardSize, c.BoardSize))
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	switch c.Server.Agent {
	case "uct", "random":
	default:
		errs = append(errs, fmt.Errorf("unknown server agent %q", c.Server.Agent))
	}
	switch c.Experiment.Name {
	case "throughput", "strength":
	default:
		errs = append(errs, fmt.Errorf("unknown experiment %q", c.Experiment.Name))
	}
	if c.Experiment.Games <= 0 || c.Experiment.Concurrency <= 0 {
		errs = append(errs, errors.New("experiment games and concurrency must be positive"))
	}
	for _, g := range c.Experiment.Goroutines {
		if g <= 0 {
			errs = append(errs, fmt.Errorf("experiment goroutines must be positive, got %d", g))
		}
	}
	return errors.Join(errs...)
}
