package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

type recipientsResponse struct {
	Recipients []usecase.Recipient `json:"recipients"`
}

type bulkSendRequest struct {
	Subject    string              `json:"subject" validate:"required,max=200"`
	Message    string              `json:"message" validate:"required"`
	Recipients []usecase.Recipient `json:"recipients" validate:"required,min=1"`
}

func (h *Handler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecipients")
	defer span.End()

	recipients, err := h.notifyService.Recipients(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list recipients failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, recipientsResponse{Recipients: recipients})
}

func (h *Handler) SendBulkMail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendBulkMail")
	defer span.End()

	var req bulkSendRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.notifyService.SendBulk(ctx, usecase.BulkSendInput{
		Subject:    req.Subject,
		Message:    req.Message,
		Recipients: req.Recipients,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "send bulk mail failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}
