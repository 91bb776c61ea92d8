package httpapi

import (
	"net/http"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.Login(ctx, req.Username, req.Password); err != nil {
		h.logger.WarnContext(ctx, "login failed", "username", req.Username, "client_ip", resolveClientIP(ctx, r))
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, loginResponse{
		Success: true,
		Message: "login successful",
	})
}
