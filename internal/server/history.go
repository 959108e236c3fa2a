package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"quoridor-history/internal/constants"
	"quoridor-history/internal/domain"
	"quoridor-history/internal/service"
	"time"

	"github.com/rs/zerolog"
)

const APIPrefix = "/api"

type HistoryServer struct {
	statusSvc *service.StatusService
	gameSvc   *service.GameService
}

func NewHistoryServer(statusSvc *service.StatusService, gameSvc *service.GameService) *HistoryServer {
	return &HistoryServer{statusSvc: statusSvc, gameSvc: gameSvc}
}

// Routes registers every endpoint on a fresh mux.
func (s *HistoryServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+APIPrefix+"/{$}", s.Root)
	mux.HandleFunc("POST "+APIPrefix+"/status", s.CreateStatusCheck)
	mux.HandleFunc("GET "+APIPrefix+"/status", s.ListStatusChecks)
	mux.HandleFunc("POST "+APIPrefix+"/games", s.CreateGameResult)
	mux.HandleFunc("GET "+APIPrefix+"/games", s.ListGameResults)
	mux.HandleFunc("GET /healthz", s.Health)
	return mux
}

type statusCheckResponse struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

type gameResultResponse struct {
	GameNumber int64     `json:"game_number"`
	WinnerName string    `json:"winner_name"`
	GameMode   string    `json:"game_mode"`
	CreatedAt  time.Time `json:"created_at"`
}

type validationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (s *HistoryServer) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (s *HistoryServer) CreateStatusCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	fields, err := decodeBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req, err := bindCreateStatusCheck(fields)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	check, err := s.statusSvc.Create(ctx, req.ClientName)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toStatusCheckResponse(*check))
}

func (s *HistoryServer) ListStatusChecks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	checks, err := s.statusSvc.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := make([]statusCheckResponse, len(checks))
	for i, c := range checks {
		resp[i] = toStatusCheckResponse(c)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *HistoryServer) CreateGameResult(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	fields, err := decodeBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req, err := bindCreateGameResult(fields)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	game, err := s.gameSvc.Create(ctx, req.WinnerName, req.GameMode)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toGameResultResponse(*game))
}

func (s *HistoryServer) ListGameResults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	games, err := s.gameSvc.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := make([]gameResultResponse, len(games))
	for i, g := range games {
		resp[i] = toGameResultResponse(g)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *HistoryServer) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.gameSvc.Ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("store ping failed")
		writeJSON(r.Context(), w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func toStatusCheckResponse(c domain.StatusCheck) statusCheckResponse {
	return statusCheckResponse{
		ID:         c.ID,
		ClientName: c.ClientName,
		Timestamp:  c.Timestamp,
	}
}

func toGameResultResponse(g domain.GameResult) gameResultResponse {
	return gameResultResponse{
		GameNumber: g.GameNumber,
		WinnerName: g.WinnerName,
		GameMode:   g.GameMode,
		CreatedAt:  g.CreatedAt,
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int("status", status).Msg("failed to write response body")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("request rejected")
		writeJSON(ctx, w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "Request body too large"})
		return
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		details := make([]validationDetail, len(verr.Fields))
		for i, f := range verr.Fields {
			loc := []string{"body"}
			if f.Field != "" {
				loc = append(loc, f.Field)
			}
			details[i] = validationDetail{Loc: loc, Msg: f.Message, Type: f.Type}
		}
		zerolog.Ctx(ctx).Debug().Err(err).Msg("request rejected")
		writeJSON(ctx, w, http.StatusUnprocessableEntity, map[string]any{"detail": details})
		return
	}

	zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	writeJSON(ctx, w, http.StatusInternalServerError, map[string]string{"detail": "Internal Server Error"})
}
