package communication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"uctgo/experiments/metrics"
	"uctgo/game"
)

const DefaultTimeout = 5 * time.Minute

// Client talks to an agent server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Communicator = (*Client)(nil)

// NewClient initializes a client for the agent served at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) URL() string {
	return c.baseURL
}

// FindMove posts the board to /findmove and decodes the agent's answer.
func (c *Client) FindMove(ctx context.Context, board *game.Board) (game.Move, metrics.SearchMetric, error) {
	body, err := json.Marshal(FindMoveRequest{Board: Snapshot(board)})
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/findmove", bytes.NewReader(body))
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("agent %s returned status %d: %s",
			c.baseURL, resp.StatusCode, strings.TrimSpace(string(out)))
	}

	var payload FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("failed to decode response: %w", err)
	}
	move, err := game.ParseMove(payload.Move, board.Size())
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("agent %s sent a bad move: %w", c.baseURL, err)
	}
	log.Debug().Msgf("agent %s answered %s", c.baseURL, payload.Move)
	return move, payload.Metric, nil
}
