package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

type adminEntryDTO struct {
	ID             int64                `json:"id"`
	PlayerName     string               `json:"playerName"`
	Email          string               `json:"email"`
	Nickname       string               `json:"nickname"`
	Score          int                  `json:"score"`
	HasPaid        bool                 `json:"hasPaid"`
	SubmissionDate string               `json:"submissionDate"`
	Selections     []selectionStatusDTO `json:"selections"`
}

type adminEntriesResponse struct {
	Entries []adminEntryDTO `json:"entries"`
}

type updateEntryRequest struct {
	PlayerName string `json:"playerName" validate:"required,max=100"`
	Nickname   string `json:"nickname" validate:"max=100"`
	Email      string `json:"email" validate:"required,email"`
	HasPaid    bool   `json:"hasPaid"`
}

type updatePaymentRequest struct {
	HasPaid bool `json:"hasPaid"`
}

func (h *Handler) ListAdminEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdminEntries")
	defer span.End()

	standings, err := h.entryService.ListWithProgress(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list admin entries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rows := make([]adminEntryDTO, 0, len(standings))
	for _, standing := range standings {
		row := adminEntryDTO{
			ID:             standing.Entry.ID,
			PlayerName:     standing.Entry.PlayerName,
			Email:          standing.Entry.Email,
			Nickname:       standing.Entry.Nickname,
			Score:          standing.Entry.Score,
			HasPaid:        standing.Entry.HasPaid,
			SubmissionDate: standing.Entry.SubmissionDate.UTC().Format(time.RFC3339),
			Selections:     make([]selectionStatusDTO, 0, len(standing.Selections)),
		}
		for _, sel := range standing.Selections {
			row.Selections = append(row.Selections, selectionToStatusDTO(ctx, sel))
		}
		rows = append(rows, row)
	}

	writeJSON(ctx, w, http.StatusOK, adminEntriesResponse{Entries: rows})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEntry")
	defer span.End()

	id, err := entryIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateEntryRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.entryService.Update(ctx, id, usecase.UpdateEntryInput{
		PlayerName: req.PlayerName,
		Nickname:   req.Nickname,
		Email:      req.Email,
		HasPaid:    req.HasPaid,
	}); err != nil {
		h.logger.WarnContext(ctx, "update entry failed", "entry_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "entry updated"})
}

func (h *Handler) UpdateEntryPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEntryPayment")
	defer span.End()

	id, err := entryIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePaymentRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.entryService.SetPaid(ctx, id, req.HasPaid); err != nil {
		h.logger.WarnContext(ctx, "update entry payment failed", "entry_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "payment status updated"})
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteEntry")
	defer span.End()

	id, err := entryIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.entryService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete entry failed", "entry_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, messageResponse{Message: "entry deleted"})
}

func entryIDFromPath(r *http.Request) (int64, error) {
	raw := r.PathValue("entryID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid entry id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}
