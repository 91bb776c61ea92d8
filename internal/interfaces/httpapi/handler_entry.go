package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

type selectionRequest struct {
	TeamName string `json:"teamName" validate:"required,max=100"`
	Region   string `json:"region" validate:"required"`
	Seed     int    `json:"seed" validate:"required,min=1,max=16"`
	Cost     int    `json:"cost" validate:"required,min=1"`
}

type submitEntryRequest struct {
	PlayerName string             `json:"playerName" validate:"required,max=100"`
	Email      string             `json:"email" validate:"required,email"`
	Nickname   string             `json:"nickname" validate:"max=100"`
	Selections []selectionRequest `json:"selectedTeams" validate:"required,min=1,dive"`
}

type submitEntryResponse struct {
	Message string `json:"message"`
	EntryID int64  `json:"entryId"`
}

type entryStatusResponse struct {
	EntriesOpen bool `json:"entriesOpen"`
}

type selectionStatusDTO struct {
	TeamName     string `json:"teamName"`
	Region       string `json:"region"`
	Seed         int    `json:"seed"`
	Cost         int    `json:"cost"`
	PointsEarned int    `json:"pointsEarned"`
	IsEliminated bool   `json:"isEliminated"`
	RoundReached int    `json:"roundReached"`
}

type standingDTO struct {
	ID          int64                `json:"id"`
	PlayerName  string               `json:"player_name"`
	Email       string               `json:"email"`
	Nickname    string               `json:"nickname"`
	Score       int                  `json:"score"`
	Teams       []selectionStatusDTO `json:"teams,omitempty"`
	TeamsHidden bool                 `json:"teamsHidden,omitempty"`
	TeamCount   int                  `json:"teamCount"`
}

type standingsResponse struct {
	Entries      []standingDTO `json:"entries"`
	TeamsVisible bool          `json:"teamsVisible"`
}

func (h *Handler) GetEntryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntryStatus")
	defer span.End()

	open, err := h.settingsService.EntriesOpen(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get entry status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, entryStatusResponse{EntriesOpen: open})
}

func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitEntry")
	defer span.End()

	var req submitEntryRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections := make([]usecase.SelectionInput, 0, len(req.Selections))
	for _, sel := range req.Selections {
		selections = append(selections, usecase.SelectionInput{
			TeamName: sel.TeamName,
			Region:   sel.Region,
			Seed:     sel.Seed,
			Cost:     sel.Cost,
		})
	}

	id, err := h.entryService.Submit(ctx, usecase.SubmitEntryInput{
		PlayerName: req.PlayerName,
		Email:      req.Email,
		Nickname:   req.Nickname,
		Selections: selections,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit entry failed", "player", req.PlayerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, submitEntryResponse{
		Message: "entry submitted",
		EntryID: id,
	})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	views, err := h.standingsService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	teamsVisible := true
	rows := make([]standingDTO, 0, len(views))
	for _, view := range views {
		if view.TeamsHidden {
			teamsVisible = false
		}
		rows = append(rows, standingToDTO(ctx, view))
	}
	if len(views) == 0 {
		visible, err := h.settingsService.TeamsVisible(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		teamsVisible = visible
	}

	writeJSON(ctx, w, http.StatusOK, standingsResponse{
		Entries:      rows,
		TeamsVisible: teamsVisible,
	})
}

func standingToDTO(ctx context.Context, view usecase.StandingView) standingDTO {
	row := standingDTO{
		ID:          view.Entry.ID,
		PlayerName:  view.Entry.PlayerName,
		Email:       view.Entry.Email,
		Nickname:    view.Entry.Nickname,
		Score:       view.Entry.Score,
		TeamsHidden: view.TeamsHidden,
		TeamCount:   view.TeamCount,
	}
	for _, sel := range view.Selections {
		row.Teams = append(row.Teams, selectionToStatusDTO(ctx, sel))
	}
	return row
}

func selectionToStatusDTO(_ context.Context, sel entry.SelectionStatus) selectionStatusDTO {
	return selectionStatusDTO{
		TeamName:     sel.TeamName,
		Region:       sel.Region,
		Seed:         sel.Seed,
		Cost:         sel.Cost,
		PointsEarned: sel.PointsEarned,
		IsEliminated: sel.IsEliminated,
		RoundReached: sel.RoundReached,
	}
}
