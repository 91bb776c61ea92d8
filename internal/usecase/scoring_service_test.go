package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
)

// recalcCaptureRepo stands in for the entry repository and records the
// points the service computes from the teams the repository supplies.
type recalcCaptureRepo struct {
	entry.Repository
	teams []bracket.Team
	got   []entry.TeamPoints
}

func (r *recalcCaptureRepo) RecalculateScores(_ context.Context, compute func(teams []bracket.Team) []entry.TeamPoints) error {
	r.got = compute(r.teams)
	return nil
}

func TestScoringService_Recompute_UsesRepositorySnapshot(t *testing.T) {
	repo := &recalcCaptureRepo{teams: []bracket.Team{
		bracket.Team{ID: 1, Name: "Baylor", Region: "East", Seed: 3}.WithRound(bracket.RoundChampion),
		{ID: 2, Name: "Auburn", Region: "East", Seed: 4, Round: bracket.RoundFirst, Eliminated: true},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoring := NewScoringService(repo, nil, logger)

	if err := scoring.Recompute(t.Context()); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	if len(repo.got) != 2 {
		t.Fatalf("unexpected point row count: %d", len(repo.got))
	}
	if repo.got[0].TeamName != "Baylor" || repo.got[0].Points != 93 {
		t.Fatalf("unexpected champion points: %+v", repo.got[0])
	}
	if repo.got[1].Points != 0 {
		t.Fatalf("unexpected eliminated-team points: %+v", repo.got[1])
	}
}

func TestScoringService_Recompute_Idempotent(t *testing.T) {
	f := newPoolFixture()
	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	duke := teamByName(t, f, "Duke", "East")
	auburn := teamByName(t, f, "Auburn", "East")
	if err := f.tournament.Advance(t.Context(), duke.ID, auburn.ID, 2); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	first := entryScore(t, f, id)
	for range 3 {
		if err := f.scoring.Recompute(t.Context()); err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
	}
	if got := entryScore(t, f, id); got != first {
		t.Fatalf("recompute changed score: got %d want %d", got, first)
	}
}

func TestScoringService_IdenticalPicksScoreIdentically(t *testing.T) {
	f := newPoolFixture()
	first := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())
	second := submitEntry(t, f, "Sam Reyes", "sam@example.com", eastRegionSelections())

	duke := teamByName(t, f, "Duke", "East")
	auburn := teamByName(t, f, "Auburn", "East")
	if err := f.tournament.Advance(t.Context(), duke.ID, auburn.ID, 3); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	if a, b := entryScore(t, f, first), entryScore(t, f, second); a != b {
		t.Fatalf("identical picks scored differently: %d vs %d", a, b)
	}
}

func TestScoringService_DeepRunAccumulates(t *testing.T) {
	f := newPoolFixture()
	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	baylor := teamByName(t, f, "Baylor", "East")
	auburn := teamByName(t, f, "Auburn", "East")
	if err := f.tournament.DeclareChampion(t.Context(), baylor.ID, auburn.ID); err != nil {
		t.Fatalf("declare champion failed: %v", err)
	}

	// Seed three champion earns 93, Auburn is out in round one.
	if got := entryScore(t, f, id); got != 93 {
		t.Fatalf("unexpected entry score: %d", got)
	}
}

func TestScoringService_ScoreAdvancingTeams_PerTeamRounds(t *testing.T) {
	f := newPoolFixture()
	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	count, err := f.scoring.ScoreAdvancingTeams(t.Context(), []AdvancingTeam{
		{TeamName: "Baylor", Region: "East", Seed: 3, RoundReached: 3},
		{TeamName: "Duke", Region: "East", Seed: 1, RoundReached: 2},
	})
	if err != nil {
		t.Fatalf("score advancing teams failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected scored team count: %d", count)
	}

	// Baylor 3*4 plus Duke 1*2; the other picks are zeroed.
	if got := entryScore(t, f, id); got != 14 {
		t.Fatalf("unexpected entry score: %d", got)
	}
}

func TestScoringService_ScoreAdvancingTeams_UnknownTeamNoOps(t *testing.T) {
	f := newPoolFixture()
	id := submitEntry(t, f, "Pat Jordan", "pat@example.com", eastRegionSelections())

	count, err := f.scoring.ScoreAdvancingTeams(t.Context(), []AdvancingTeam{
		{TeamName: "Hoboken State", Region: "East", Seed: 12, RoundReached: 2},
	})
	if err != nil {
		t.Fatalf("score advancing teams failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("unexpected scored team count: %d", count)
	}

	// No selection names that team, so every score resets to zero.
	if got := entryScore(t, f, id); got != 0 {
		t.Fatalf("unexpected entry score: %d", got)
	}
}

func TestScoringService_ScoreAdvancingTeams_InvalidInput(t *testing.T) {
	f := newPoolFixture()

	cases := []struct {
		name  string
		teams []AdvancingTeam
	}{
		{"empty list", nil},
		{"missing name", []AdvancingTeam{{Region: "East", Seed: 1, RoundReached: 2}}},
		{"bad region", []AdvancingTeam{{TeamName: "Duke", Region: "North", Seed: 1, RoundReached: 2}}},
		{"bad seed", []AdvancingTeam{{TeamName: "Duke", Region: "East", Seed: 17, RoundReached: 2}}},
		{"bad round", []AdvancingTeam{{TeamName: "Duke", Region: "East", Seed: 1, RoundReached: 0}}},
	}
	for _, tc := range cases {
		if _, err := f.scoring.ScoreAdvancingTeams(t.Context(), tc.teams); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}
