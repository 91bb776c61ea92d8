package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

type teamDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Region     string `json:"region"`
	Seed       int    `json:"seed"`
	Round      int    `json:"round"`
	Eliminated bool   `json:"eliminated"`
	FinalFour  bool   `json:"finalFour"`
	Finalist   bool   `json:"finalist"`
	Champion   bool   `json:"champion"`
}

type tournamentResponse struct {
	TournamentData []teamDTO `json:"tournamentData"`
}

type advanceTeamRequest struct {
	WinnerID int64 `json:"winnerId" validate:"required"`
	LoserID  int64 `json:"loserId" validate:"required"`
	ToRound  int   `json:"toRound" validate:"required,min=2,max=5"`
}

type matchupRequest struct {
	WinnerID int64 `json:"winnerId" validate:"required"`
	LoserID  int64 `json:"loserId" validate:"required"`
}

type undoAdvancementRequest struct {
	WinnerID      int64 `json:"winnerId" validate:"required"`
	LoserID       int64 `json:"loserId" validate:"required"`
	PreviousRound int   `json:"previousRound" validate:"required,min=1,max=7"`
}

type advancingTeamRequest struct {
	TeamName     string `json:"teamName" validate:"required,max=100"`
	Region       string `json:"region" validate:"required"`
	Seed         int    `json:"seed" validate:"required,min=1,max=16"`
	RoundReached int    `json:"roundReached" validate:"required,min=1,max=7"`
}

type updateScoresRequest struct {
	AdvancingTeams []advancingTeamRequest `json:"advancingTeams" validate:"omitempty,dive"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	teams, err := h.tournamentService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rows := make([]teamDTO, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, teamToDTO(ctx, team))
	}

	writeJSON(ctx, w, http.StatusOK, tournamentResponse{TournamentData: rows})
}

func (h *Handler) AdvanceTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceTeam")
	defer span.End()

	var req advanceTeamRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.Advance(ctx, req.WinnerID, req.LoserID, req.ToRound); err != nil {
		h.logger.WarnContext(ctx, "advance team failed", "winner_id", req.WinnerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "team advanced"})
}

func (h *Handler) AdvanceToFinal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceToFinal")
	defer span.End()

	var req matchupRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.AdvanceToFinal(ctx, req.WinnerID, req.LoserID); err != nil {
		h.logger.WarnContext(ctx, "advance to final failed", "winner_id", req.WinnerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "team advanced to championship"})
}

func (h *Handler) DeclareChampion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclareChampion")
	defer span.End()

	var req matchupRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.DeclareChampion(ctx, req.WinnerID, req.LoserID); err != nil {
		h.logger.WarnContext(ctx, "declare champion failed", "winner_id", req.WinnerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "champion declared"})
}

func (h *Handler) UndoAdvancement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoAdvancement")
	defer span.End()

	var req undoAdvancementRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.Undo(ctx, req.WinnerID, req.LoserID, req.PreviousRound); err != nil {
		h.logger.WarnContext(ctx, "undo advancement failed", "winner_id", req.WinnerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "advancement undone"})
}

func (h *Handler) ResetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetTournament")
	defer span.End()

	if err := h.tournamentService.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "tournament reset"})
}

// UpdateScores recomputes all scores, or rewrites them from the
// caller's advancing-team results when the request carries them.
func (h *Handler) UpdateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScores")
	defer span.End()

	var req updateScoresRequest
	if r.ContentLength > 0 {
		if err := h.decodeBody(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	if len(req.AdvancingTeams) == 0 {
		if err := h.scoringService.Recompute(ctx); err != nil {
			h.logger.ErrorContext(ctx, "recompute scores failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "scores recomputed"})
		return
	}

	teams := make([]usecase.AdvancingTeam, 0, len(req.AdvancingTeams))
	for _, team := range req.AdvancingTeams {
		teams = append(teams, usecase.AdvancingTeam{
			TeamName:     team.TeamName,
			Region:       team.Region,
			Seed:         team.Seed,
			RoundReached: team.RoundReached,
		})
	}

	count, err := h.scoringService.ScoreAdvancingTeams(ctx, teams)
	if err != nil {
		h.logger.WarnContext(ctx, "score advancing teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"message":     "scores updated",
		"teamsScored": count,
	})
}

func teamToDTO(_ context.Context, team bracket.Team) teamDTO {
	return teamDTO{
		ID:         team.ID,
		Name:       team.Name,
		Region:     team.Region,
		Seed:       team.Seed,
		Round:      team.Round,
		Eliminated: team.Eliminated,
		FinalFour:  team.FinalFour,
		Finalist:   team.Finalist,
		Champion:   team.Champion,
	}
}
