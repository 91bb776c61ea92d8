package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/bracket-pool/internal/domain/settings"
)

// SettingsService exposes the pool settings as typed values over the
// raw key/value store. Missing keys fall back to code defaults and are
// only persisted by an explicit write.
type SettingsService struct {
	repo   settings.Repository
	logger *slog.Logger
}

func NewSettingsService(repo settings.Repository, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsService{repo: repo, logger: logger}
}

func (s *SettingsService) EntriesOpen(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.EntriesOpen")
	defer span.End()

	return s.boolSetting(ctx, settings.KeyEntriesOpen, settings.DefaultEntriesOpen)
}

func (s *SettingsService) ToggleEntriesOpen(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.ToggleEntriesOpen")
	defer span.End()

	current, err := s.boolSetting(ctx, settings.KeyEntriesOpen, settings.DefaultEntriesOpen)
	if err != nil {
		return false, err
	}

	next := !current
	if err := s.repo.Set(ctx, settings.KeyEntriesOpen, strconv.FormatBool(next)); err != nil {
		return false, fmt.Errorf("set entries open: %w", err)
	}

	s.logger.InfoContext(ctx, "entry status toggled", "entries_open", next)
	return next, nil
}

func (s *SettingsService) TeamsVisible(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.TeamsVisible")
	defer span.End()

	return s.boolSetting(ctx, settings.KeyTeamsVisible, settings.DefaultTeamsVisible)
}

func (s *SettingsService) ToggleTeamsVisible(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.ToggleTeamsVisible")
	defer span.End()

	current, err := s.boolSetting(ctx, settings.KeyTeamsVisible, settings.DefaultTeamsVisible)
	if err != nil {
		return false, err
	}

	next := !current
	if err := s.repo.Set(ctx, settings.KeyTeamsVisible, strconv.FormatBool(next)); err != nil {
		return false, fmt.Errorf("set teams visible: %w", err)
	}

	s.logger.InfoContext(ctx, "team visibility toggled", "teams_visible", next)
	return next, nil
}

func (s *SettingsService) FinalFourMatchups(ctx context.Context) (settings.Matchups, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.FinalFourMatchups")
	defer span.End()

	raw, exists, err := s.repo.Get(ctx, settings.KeyFinalFourMatchups)
	if err != nil {
		return settings.Matchups{}, fmt.Errorf("get final four matchups: %w", err)
	}
	if !exists {
		return settings.DefaultMatchups(), nil
	}

	var matchups settings.Matchups
	if err := sonic.Unmarshal([]byte(raw), &matchups); err != nil {
		s.logger.WarnContext(ctx, "stored matchups are malformed, using defaults", "error", err)
		return settings.DefaultMatchups(), nil
	}

	return matchups, nil
}

func (s *SettingsService) SaveFinalFourMatchups(ctx context.Context, matchups settings.Matchups) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.SaveFinalFourMatchups")
	defer span.End()

	if err := matchups.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	raw, err := sonic.Marshal(matchups)
	if err != nil {
		return fmt.Errorf("marshal final four matchups: %w", err)
	}
	if err := s.repo.Set(ctx, settings.KeyFinalFourMatchups, string(raw)); err != nil {
		return fmt.Errorf("set final four matchups: %w", err)
	}

	return nil
}

func (s *SettingsService) boolSetting(ctx context.Context, key string, fallback bool) (bool, error) {
	raw, exists, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get setting %s: %w", key, err)
	}
	if !exists {
		return fallback, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "stored setting is malformed, using default", "key", key, "value", raw)
		return fallback, nil
	}

	return value, nil
}
