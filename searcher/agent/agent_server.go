package agent

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"uctgo/communication"
)

// NewRouter serves a on POST /findmove, with GET /healthz for liveness.
func NewRouter(a Agent) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", func(w http.ResponseWriter, r *http.Request) {
		handleFindMove(a, w, r)
	})
	return r
}

// StartAgentServer serves a on addr until the server fails.
func StartAgentServer(addr string, a Agent) error {
	log.Info().Msgf("starting agent server on %s", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

func handleFindMove(a Agent, w http.ResponseWriter, r *http.Request) {
	var payload communication.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request: " + err.Error()})
		return
	}
	board, err := payload.Board.Restore()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad board: " + err.Error()})
		return
	}
	if board.IsTerminal() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "game is already over"})
		return
	}

	move, metric, err := a.FindMove(board)
	if err != nil {
		log.Error().Err(err).Str("request", middleware.GetReqID(r.Context())).Msg("failed to find move")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	log.Debug().Msgf("%s plays %s", board.NextForce(), move.Format(board.Size()))
	writeJSON(w, http.StatusOK, communication.FindMoveResponse{
		Move:   move.Format(board.Size()),
		Metric: metric,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
