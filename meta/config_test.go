package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
board_size: 7
simulations: 500
seed: 42
server:
  agent: random
experiment:
  name: strength
  goroutines: [1, 3]
`)

		config, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, "debug", config.LogLevel)
		require.Equal(t, 7, config.BoardSize)
		require.Equal(t, 500, config.Simulations)
		require.Equal(t, uint64(42), config.Seed)
		require.Equal(t, "random", config.Server.Agent)
		require.Equal(t, ":8080", config.Server.Addr, "Missing keys should keep their default")
		require.Equal(t, GO_ROUTINES, config.Goroutines)
		require.Equal(t, []int{1, 3}, config.Experiment.Goroutines)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "board_size: [oops"))

		require.Error(t, err)
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "board_size: 25\ngoroutines: 0\n"))

		require.ErrorContains(t, err, "board_size 25")
		require.ErrorContains(t, err, "goroutines must be positive")
	})
}

func TestValidate(t *testing.T) {
	t.Run("budget must cover the board", func(t *testing.T) {
		config := DefaultConfig()
		config.Simulations = 80

		require.ErrorContains(t, config.Validate(), "cannot visit every move")
	})

	t.Run("unknown agent", func(t *testing.T) {
		config := DefaultConfig()
		config.Server.Agent = "oracle"

		require.ErrorContains(t, config.Validate(), "unknown server agent")
	})
}
