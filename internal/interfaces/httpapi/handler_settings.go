package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bracket-pool/internal/domain/settings"
)

type teamVisibilityResponse struct {
	TeamsVisible bool `json:"teamsVisible"`
}

type matchupsRequest struct {
	Semifinal1 [2]string `json:"semifinal1" validate:"required"`
	Semifinal2 [2]string `json:"semifinal2" validate:"required"`
}

type matchupsResponse struct {
	Semifinal1 [2]string `json:"semifinal1"`
	Semifinal2 [2]string `json:"semifinal2"`
}

func (h *Handler) ToggleEntryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleEntryStatus")
	defer span.End()

	open, err := h.settingsService.ToggleEntriesOpen(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "toggle entry status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, entryStatusResponse{EntriesOpen: open})
}

func (h *Handler) GetTeamVisibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamVisibility")
	defer span.End()

	visible, err := h.settingsService.TeamsVisible(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get team visibility failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamVisibilityResponse{TeamsVisible: visible})
}

func (h *Handler) ToggleTeamVisibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleTeamVisibility")
	defer span.End()

	visible, err := h.settingsService.ToggleTeamsVisible(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "toggle team visibility failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamVisibilityResponse{TeamsVisible: visible})
}

func (h *Handler) GetFinalFourMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFinalFourMatchups")
	defer span.End()

	matchups, err := h.settingsService.FinalFourMatchups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get final four matchups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, matchupsResponse{
		Semifinal1: matchups.Semifinal1,
		Semifinal2: matchups.Semifinal2,
	})
}

func (h *Handler) SaveFinalFourMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveFinalFourMatchups")
	defer span.End()

	var req matchupsRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.settingsService.SaveFinalFourMatchups(ctx, settings.Matchups{
		Semifinal1: req.Semifinal1,
		Semifinal2: req.Semifinal2,
	}); err != nil {
		h.logger.WarnContext(ctx, "save final four matchups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "matchups saved"})
}
