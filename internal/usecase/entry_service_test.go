package usecase

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/riskibarqy/bracket-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/bracket-pool/internal/platform/cache"
)

type poolFixture struct {
	bracketRepo  *memory.BracketRepository
	entryRepo    *memory.EntryRepository
	settingsRepo *memory.SettingsRepository
	settings     *SettingsService
	standings    *StandingsService
	scoring      *ScoringService
	tournament   *TournamentService
	entries      *EntryService
}

func newPoolFixture() *poolFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bracketRepo := memory.NewBracketRepository(memory.SeedTeams())
	entryRepo := memory.NewEntryRepository(bracketRepo)
	settingsRepo := memory.NewSettingsRepository()

	settings := NewSettingsService(settingsRepo, logger)
	standings := NewStandingsService(entryRepo, settings, cache.NewStore(time.Minute), logger)
	scoring := NewScoringService(entryRepo, standings, logger)
	tournament := NewTournamentService(bracketRepo, scoring, logger)
	entries := NewEntryService(entryRepo, bracketRepo, settings, standings, logger)

	return &poolFixture{
		bracketRepo:  bracketRepo,
		entryRepo:    entryRepo,
		settingsRepo: settingsRepo,
		settings:     settings,
		standings:    standings,
		scoring:      scoring,
		tournament:   tournament,
		entries:      entries,
	}
}

func eastRegionSelections() []SelectionInput {
	return []SelectionInput{
		{TeamName: "Duke", Region: "East", Seed: 1, Cost: 80},
		{TeamName: "Marquette", Region: "East", Seed: 2, Cost: 60},
		{TeamName: "Baylor", Region: "East", Seed: 3, Cost: 40},
		{TeamName: "Auburn", Region: "East", Seed: 4, Cost: 20},
	}
}

func submitEntry(t *testing.T, f *poolFixture, player, email string, selections []SelectionInput) int64 {
	t.Helper()

	id, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: player,
		Email:      email,
		Nickname:   player,
		Selections: selections,
	})
	if err != nil {
		t.Fatalf("submit entry for %s failed: %v", player, err)
	}
	return id
}

func TestEntryService_Submit_ExactBudget(t *testing.T) {
	f := newPoolFixture()
	f.entries.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	e, selections, err := f.entries.Get(t.Context(), id)
	if err != nil {
		t.Fatalf("get entry failed: %v", err)
	}
	if e.PlayerName != "Pat Jordan" {
		t.Fatalf("unexpected player name: %s", e.PlayerName)
	}
	if !e.SubmissionDate.Equal(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected submission date: %s", e.SubmissionDate)
	}
	if len(selections) != 4 {
		t.Fatalf("unexpected selection count: %d", len(selections))
	}
}

func TestEntryService_Submit_BudgetMustBeExact(t *testing.T) {
	f := newPoolFixture()

	under := eastRegionSelections()
	under[3].Cost = 19
	if _, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: "Pat Jordan",
		Email:      "pat@example.com",
		Nickname:   "PJ",
		Selections: under,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 199 points, got %v", err)
	}

	over := eastRegionSelections()
	over[3].Cost = 21
	if _, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: "Pat Jordan",
		Email:      "pat@example.com",
		Nickname:   "PJ",
		Selections: over,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 201 points, got %v", err)
	}

	submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())
}

func TestEntryService_Submit_EntriesClosed(t *testing.T) {
	f := newPoolFixture()

	if _, err := f.settings.ToggleEntriesOpen(t.Context()); err != nil {
		t.Fatalf("toggle entries open failed: %v", err)
	}

	_, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: "Pat Jordan",
		Email:      "pat@example.com",
		Nickname:   "PJ",
		Selections: eastRegionSelections(),
	})
	if !errors.Is(err, ErrEntriesClosed) {
		t.Fatalf("expected ErrEntriesClosed, got %v", err)
	}
}

func TestEntryService_Submit_UnknownTeam(t *testing.T) {
	f := newPoolFixture()

	selections := eastRegionSelections()
	selections[0].TeamName = "Hoboken State"

	_, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: "Pat Jordan",
		Email:      "pat@example.com",
		Nickname:   "PJ",
		Selections: selections,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEntryService_Submit_MissingFields(t *testing.T) {
	f := newPoolFixture()

	_, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: "   ",
		Email:      "pat@example.com",
		Nickname:   "PJ",
		Selections: eastRegionSelections(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEntryService_Submit_RequiresNickname(t *testing.T) {
	f := newPoolFixture()

	_, err := f.entries.Submit(t.Context(), SubmitEntryInput{
		PlayerName: "Pat Jordan",
		Email:      "pat@example.com",
		Selections: eastRegionSelections(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without a nickname, got %v", err)
	}
}

func TestEntryService_Update_NotFound(t *testing.T) {
	f := newPoolFixture()

	err := f.entries.Update(t.Context(), 404, UpdateEntryInput{
		PlayerName: "Pat Jordan",
		Email:      "pat@example.com",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEntryService_SetPaid(t *testing.T) {
	f := newPoolFixture()
	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	if err := f.entries.SetPaid(t.Context(), id, true); err != nil {
		t.Fatalf("set paid failed: %v", err)
	}

	e, _, err := f.entries.Get(t.Context(), id)
	if err != nil {
		t.Fatalf("get entry failed: %v", err)
	}
	if !e.HasPaid {
		t.Fatal("expected entry to be marked paid")
	}
}

func TestEntryService_Delete_RemovesSelections(t *testing.T) {
	f := newPoolFixture()
	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	if err := f.entries.Delete(t.Context(), id); err != nil {
		t.Fatalf("delete entry failed: %v", err)
	}

	if _, _, err := f.entries.Get(t.Context(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	selections, err := f.entryRepo.ListSelections(t.Context(), id)
	if err != nil {
		t.Fatalf("list selections failed: %v", err)
	}
	if len(selections) != 0 {
		t.Fatalf("expected no selections after delete, got %d", len(selections))
	}
}

func TestEntryService_ListWithProgress_AnnotatesEliminations(t *testing.T) {
	f := newPoolFixture()
	submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	duke := teamByName(t, f, "Duke", "East")
	auburn := teamByName(t, f, "Auburn", "East")
	if err := f.tournament.Advance(t.Context(), duke.ID, auburn.ID, 2); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	standings, err := f.entries.ListWithProgress(t.Context())
	if err != nil {
		t.Fatalf("list with progress failed: %v", err)
	}
	if len(standings) != 1 {
		t.Fatalf("unexpected standings count: %d", len(standings))
	}

	for _, sel := range standings[0].Selections {
		switch sel.TeamName {
		case "Duke":
			if sel.IsEliminated || sel.RoundReached != 2 {
				t.Fatalf("unexpected Duke status: eliminated=%v round=%d", sel.IsEliminated, sel.RoundReached)
			}
		case "Auburn":
			if !sel.IsEliminated {
				t.Fatal("expected Auburn to be eliminated")
			}
		}
	}
}
