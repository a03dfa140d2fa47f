package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"league-activity/internal/domain"
	"league-activity/internal/service"
)

// ActivityServer exposes the orchestrator over a thin JSON endpoint.
type ActivityServer struct {
	activitySvc *service.ActivityService
	logger      zerolog.Logger
}

func NewActivityServer(activitySvc *service.ActivityService, logger zerolog.Logger) *ActivityServer {
	return &ActivityServer{activitySvc: activitySvc, logger: logger}
}

type activityResponse struct {
	GamesPerDay  int     `json:"games_per_day"`
	GamesPerWeek int     `json:"games_per_week"`
	Role         *string `json:"role"`
}

func (s *ActivityServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/players/{id}/activity", s.getActivity)
	mux.HandleFunc("POST /api/v1/players/{id}/accounts", s.linkAccount)
	return mux
}

func (s *ActivityServer) getActivity(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("id")

	result, err := s.activitySvc.RefreshAndGetActivity(r.Context(), playerID)
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("activity lookup failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := activityResponse{
		GamesPerDay:  result.GamesPerDay,
		GamesPerWeek: result.GamesPerWeek,
	}
	if result.Role != nil {
		role := string(*result.Role)
		resp.Role = &role
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write response")
	}
}

type linkAccountRequest struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
	Region      string `json:"region"`
}

func (s *ActivityServer) linkAccount(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("id")

	var req linkAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.AccountID == "" || req.DisplayName == "" || req.Region == "" {
		http.Error(w, "account_id, display_name and region are required", http.StatusBadRequest)
		return
	}

	ref := domain.AccountRef{
		AccountID:   req.AccountID,
		DisplayName: req.DisplayName,
		Region:      req.Region,
	}
	if err := s.activitySvc.LinkAccount(r.Context(), playerID, ref); err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("account link failed")
		if errors.Is(err, domain.ErrUpstreamNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
