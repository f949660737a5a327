package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"mjlog/internal/api"
	"mjlog/internal/constants"
	"mjlog/internal/middleware"
	"mjlog/internal/render"
	"mjlog/internal/repository"
	"mjlog/internal/service"
)

type GameServer struct {
	games   *service.GameService
	archive *api.ArchiveClient
	logger  zerolog.Logger
}

func NewGameServer(games *service.GameService, archive *api.ArchiveClient, logger zerolog.Logger) *GameServer {
	return &GameServer{games: games, archive: archive, logger: logger}
}

// Handler returns the routed API wrapped in CORS, request id and panic
// recovery middleware.
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/games", s.importGame)
	mux.HandleFunc("POST /v1/games/fetch", s.fetchGames)
	mux.HandleFunc("GET /v1/games", s.listGames)
	mux.HandleFunc("GET /v1/games/{id}", s.getGame)
	mux.HandleFunc("GET /v1/archive/stats", s.archiveStats)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return middleware.RequestID(s.logger)(middleware.Recover(c.Handler(mux)))
}

func (s *GameServer) importGame(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "upload-" + uuid.NewString()
	}

	body := http.MaxBytesReader(w, r.Body, constants.MaxLogBytes)
	stored, err := s.games.Import(r.Context(), source, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, render.FromStored(stored))
}

type fetchRequest struct {
	IDs     []string `json:"ids"`
	Refresh bool     `json:"refresh"`
}

type fetchResult struct {
	LogID  string `json:"log_id"`
	GameID string `json:"game_id,omitempty"`
	Rounds int    `json:"rounds,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *GameServer) fetchGames(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(r, "invalid request body: "+err.Error()))
		return
	}

	results, err := s.games.FetchBatch(r.Context(), req.IDs, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]fetchResult, len(results))
	for i, res := range results {
		out[i] = fetchResult{LogID: res.LogID}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
			continue
		}
		out[i].GameID = res.Game.ID
		out[i].Rounds = res.Game.RoundCount
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (s *GameServer) listGames(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody(r, "limit must be a positive integer"))
			return
		}
		limit = v
	}

	games, err := s.games.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": render.Summaries(games)})
}

func (s *GameServer) getGame(w http.ResponseWriter, r *http.Request) {
	stored, err := s.games.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := render.FromStored(stored)
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		if err := render.YAML(w, doc); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write yaml")
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *GameServer) archiveStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.archive.Stats())
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, api.ErrLogNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, service.ErrMissingSource),
		errors.Is(err, api.ErrInvalidLogID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *GameServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, errorBody(r, err.Error()))
}

func errorBody(r *http.Request, msg string) map[string]string {
	body := map[string]string{"error": msg}
	if id := middleware.GetRequestID(r.Context()); id != "" {
		body["request_id"] = id
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
