package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
)

type SelectionInput struct {
	TeamName string
	Region   string
	Seed     int
	Cost     int
}

type SubmitEntryInput struct {
	PlayerName string
	Email      string
	Nickname   string
	Selections []SelectionInput
}

type UpdateEntryInput struct {
	PlayerName string
	Nickname   string
	Email      string
	HasPaid    bool
}

// EntryService owns the pool entries. Submissions are validated
// against the stored bracket and the shared point budget before
// anything is persisted.
type EntryService struct {
	entryRepo   entry.Repository
	bracketRepo bracket.Repository
	settings    *SettingsService
	standings   *StandingsService
	rules       entry.Rules
	now         func() time.Time
	logger      *slog.Logger
}

func NewEntryService(
	entryRepo entry.Repository,
	bracketRepo bracket.Repository,
	settings *SettingsService,
	standings *StandingsService,
	logger *slog.Logger,
) *EntryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EntryService{
		entryRepo:   entryRepo,
		bracketRepo: bracketRepo,
		settings:    settings,
		standings:   standings,
		rules:       entry.DefaultRules(),
		now:         time.Now,
		logger:      logger,
	}
}

func (s *EntryService) Submit(ctx context.Context, input SubmitEntryInput) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Submit")
	defer span.End()

	open, err := s.settings.EntriesOpen(ctx)
	if err != nil {
		return 0, err
	}
	if !open {
		return 0, ErrEntriesClosed
	}

	e := entry.Entry{
		PlayerName:     strings.TrimSpace(input.PlayerName),
		Email:          strings.TrimSpace(input.Email),
		Nickname:       strings.TrimSpace(input.Nickname),
		SubmissionDate: s.now().UTC(),
	}
	if err := e.ValidateBasic(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	selections := make([]entry.Selection, 0, len(input.Selections))
	for _, sel := range input.Selections {
		selections = append(selections, entry.Selection{
			TeamName: strings.TrimSpace(sel.TeamName),
			Region:   strings.TrimSpace(sel.Region),
			Seed:     sel.Seed,
			Cost:     sel.Cost,
		})
	}

	teams, err := s.bracketRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list teams for entry validation: %w", err)
	}
	known := make(map[string]bracket.Team, len(teams))
	for _, team := range teams {
		known[entry.TeamKey(team.Name, team.Region)] = team
	}

	if err := entry.ValidateSelections(selections, s.rules, known); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.entryRepo.Create(ctx, e, selections)
	if err != nil {
		return 0, fmt.Errorf("create entry: %w", err)
	}
	s.standings.Invalidate(ctx)

	s.logger.InfoContext(ctx, "entry submitted", "entry_id", id, "player", e.PlayerName, "teams", len(selections))
	return id, nil
}

func (s *EntryService) Get(ctx context.Context, id int64) (entry.Entry, []entry.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Get")
	defer span.End()

	e, exists, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return entry.Entry{}, nil, fmt.Errorf("get entry: %w", err)
	}
	if !exists {
		return entry.Entry{}, nil, fmt.Errorf("%w: entry %d", ErrNotFound, id)
	}

	selections, err := s.entryRepo.ListSelections(ctx, id)
	if err != nil {
		return entry.Entry{}, nil, fmt.Errorf("list entry selections: %w", err)
	}

	return e, selections, nil
}

// ListWithProgress returns every entry with its selections annotated
// by the current tournament state. Used by the admin roster view.
func (s *EntryService) ListWithProgress(ctx context.Context) ([]entry.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.ListWithProgress")
	defer span.End()

	standings, err := s.entryRepo.ListWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries with status: %w", err)
	}
	return standings, nil
}

func (s *EntryService) Update(ctx context.Context, id int64, input UpdateEntryInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Update")
	defer span.End()

	playerName := strings.TrimSpace(input.PlayerName)
	email := strings.TrimSpace(input.Email)
	if playerName == "" || email == "" {
		return fmt.Errorf("%w: player name and email are required", ErrInvalidInput)
	}

	if err := s.requireEntry(ctx, id); err != nil {
		return err
	}

	if err := s.entryRepo.Update(ctx, id, playerName, strings.TrimSpace(input.Nickname), email, input.HasPaid); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	s.standings.Invalidate(ctx)

	return nil
}

func (s *EntryService) SetPaid(ctx context.Context, id int64, hasPaid bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.SetPaid")
	defer span.End()

	if err := s.requireEntry(ctx, id); err != nil {
		return err
	}

	if err := s.entryRepo.SetPaid(ctx, id, hasPaid); err != nil {
		return fmt.Errorf("set entry paid: %w", err)
	}
	s.standings.Invalidate(ctx)

	return nil
}

// Delete removes an entry and all of its selections.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Delete")
	defer span.End()

	if err := s.requireEntry(ctx, id); err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.standings.Invalidate(ctx)

	s.logger.InfoContext(ctx, "entry deleted", "entry_id", id)
	return nil
}

func (s *EntryService) requireEntry(ctx context.Context, id int64) error {
	_, exists, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: entry %d", ErrNotFound, id)
	}
	return nil
}
