package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
	"github.com/riskibarqy/bracket-pool/internal/platform/cache"
)

const standingsCacheKey = "standings:list"

// StandingView is one scoreboard row. When team picks are hidden the
// selections are omitted and only their count is reported.
type StandingView struct {
	Entry       entry.Entry
	Selections  []entry.SelectionStatus
	TeamsHidden bool
	TeamCount   int
}

// StandingsService serves the public scoreboard. Raw standings are
// cached before visibility is applied, so toggling team visibility
// takes effect without an invalidation.
type StandingsService struct {
	entryRepo entry.Repository
	settings  *SettingsService
	store     *cache.Store
	logger    *slog.Logger
}

func NewStandingsService(entryRepo entry.Repository, settings *SettingsService, store *cache.Store, logger *slog.Logger) *StandingsService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StandingsService{
		entryRepo: entryRepo,
		settings:  settings,
		store:     store,
		logger:    logger,
	}
}

func (s *StandingsService) List(ctx context.Context) ([]StandingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.List")
	defer span.End()

	standings, err := s.loadStandings(ctx)
	if err != nil {
		return nil, err
	}

	visible, err := s.settings.TeamsVisible(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]StandingView, 0, len(standings))
	for _, standing := range standings {
		view := StandingView{
			Entry:     standing.Entry,
			TeamCount: len(standing.Selections),
		}
		if visible {
			view.Selections = standing.Selections
		} else {
			view.TeamsHidden = true
		}
		out = append(out, view)
	}

	return out, nil
}

// Invalidate drops the cached standings. Called after any write that
// changes entries or scores.
func (s *StandingsService) Invalidate(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.store.Delete(ctx, standingsCacheKey)
}

func (s *StandingsService) loadStandings(ctx context.Context) ([]entry.Standing, error) {
	load := func(ctx context.Context) (any, error) {
		standings, err := s.entryRepo.ListStandings(ctx)
		if err != nil {
			return nil, fmt.Errorf("list standings: %w", err)
		}
		return standings, nil
	}

	if s.store == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]entry.Standing), nil
	}

	value, err := s.store.GetOrLoad(ctx, standingsCacheKey, load)
	if err != nil {
		return nil, err
	}

	standings, ok := value.([]entry.Standing)
	if !ok {
		s.logger.WarnContext(ctx, "cached standings have unexpected type, reloading")
		s.store.Delete(ctx, standingsCacheKey)
		fresh, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return fresh.([]entry.Standing), nil
	}

	return standings, nil
}
