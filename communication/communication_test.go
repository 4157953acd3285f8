package communication

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"uctgo/experiments/metrics"
	"uctgo/game"
)

func TestSnapshot(t *testing.T) {
	t.Run("rows read from the top", func(t *testing.T) {
		b := game.NewBoard(3).Play(game.NewMove(3, 0, 1)).Play(game.NewMove(3, 2, 2)).(*game.Board)

		s := Snapshot(b)

		require.Equal(t, 3, s.Size)
		require.Equal(t, []string{".X.", "...", "..O"}, s.Rows)
		require.Equal(t, "black", s.Next)
		require.Empty(t, s.Ko)
		require.Equal(t, 0, s.Passes)
	})

	t.Run("restore gives back the same position", func(t *testing.T) {
		b := game.NewBoard(5)
		for _, m := range []string{"C3", "D3", "C4", "pass"} {
			move, err := game.ParseMove(m, 5)
			require.NoError(t, err)
			if move.IsPass() {
				b = b.Pass(b.NextForce()).(*game.Board)
			} else {
				b = b.Play(move).(*game.Board)
			}
		}

		restored, err := Snapshot(b).Restore()

		require.NoError(t, err)
		require.Equal(t, b.Hash(), restored.Hash(), "Hash covers stones, side, ko and passes")
		require.Equal(t, b.Cells(), restored.Cells())
		require.Equal(t, 1, restored.Passes())
	})

	t.Run("ko point survives the wire", func(t *testing.T) {
		// Only the encoding of the ko point matters here
		cells := []game.Force{
			game.Empty, game.Black, game.White, game.Empty,
			game.Black, game.White, game.Empty, game.White,
			game.Empty, game.Black, game.White, game.Empty,
			game.Empty, game.Empty, game.Empty, game.Empty,
		}
		b, err := game.RestoreBoard(4, cells, game.Black, game.NewMove(4, 1, 2), 0)
		require.NoError(t, err)

		s := Snapshot(b)
		restored, err := s.Restore()

		require.NoError(t, err)
		require.Equal(t, "C3", s.Ko)
		require.Equal(t, b.Ko(), restored.Ko())
	})

	t.Run("restore rejects malformed snapshots", func(t *testing.T) {
		for name, s := range map[string]BoardSnapshot{
			"row count":    {Size: 2, Rows: []string{".."}, Next: "black"},
			"row width":    {Size: 2, Rows: []string{"..", "..."}, Next: "black"},
			"unknown mark": {Size: 2, Rows: []string{"..", ".#"}, Next: "black"},
			"unknown side": {Size: 2, Rows: []string{"..", ".."}, Next: "red"},
			"bad ko":       {Size: 2, Rows: []string{"..", ".."}, Next: "white", Ko: "Z9"},
			"bad size":     {Size: 1, Rows: []string{"."}, Next: "black"},
		} {
			_, err := s.Restore()
			require.Error(t, err, name)
		}
	})
}

func TestClient(t *testing.T) {
	t.Run("posts the board and parses the move", func(t *testing.T) {
		var got FindMoveRequest
		var path, method string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path, method = r.URL.Path, r.Method
			json.NewDecoder(r.Body).Decode(&got)
			json.NewEncoder(w).Encode(FindMoveResponse{
				Move:   "B2",
				Metric: metrics.SearchMetric{Episodes: 12},
			})
		}))
		defer server.Close()

		move, metric, err := NewClient(server.URL+"/", time.Second).FindMove(context.Background(), game.NewBoard(3))

		require.NoError(t, err)
		require.Equal(t, game.NewMove(3, 1, 1), move)
		require.Equal(t, 12, metric.Episodes)
		require.Equal(t, "/findmove", path)
		require.Equal(t, http.MethodPost, method)
		require.Equal(t, 3, got.Board.Size)
	})

	t.Run("error status is reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no agent here", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, _, err := NewClient(server.URL, time.Second).FindMove(context.Background(), game.NewBoard(3))

		require.ErrorContains(t, err, "503")
		require.ErrorContains(t, err, "no agent here")
	})

	t.Run("unparsable move is reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(FindMoveResponse{Move: "Z99"})
		}))
		defer server.Close()

		_, _, err := NewClient(server.URL, time.Second).FindMove(context.Background(), game.NewBoard(3))

		require.ErrorContains(t, err, "bad move")
	})

	t.Run("cancelled context stops the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewClient(server.URL, time.Second).FindMove(ctx, game.NewBoard(3))

		require.ErrorIs(t, err, context.Canceled)
	})
}
