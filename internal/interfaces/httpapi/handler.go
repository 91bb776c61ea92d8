package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/bracket-pool/internal/usecase"
)

type Handler struct {
	tournamentService *usecase.TournamentService
	scoringService    *usecase.ScoringService
	entryService      *usecase.EntryService
	standingsService  *usecase.StandingsService
	settingsService   *usecase.SettingsService
	authService       *usecase.AuthService
	notifyService     *usecase.NotifyService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	scoringService *usecase.ScoringService,
	entryService *usecase.EntryService,
	standingsService *usecase.StandingsService,
	settingsService *usecase.SettingsService,
	authService *usecase.AuthService,
	notifyService *usecase.NotifyService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		scoringService:    scoringService,
		entryService:      entryService,
		standingsService:  standingsService,
		settingsService:   settingsService,
		authService:       authService,
		notifyService:     notifyService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeBody(ctx context.Context, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
