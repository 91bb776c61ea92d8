package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
)

// EntryRepository keeps entries and their selections in memory. It
// reads the bracket repository to annotate selections with each team's
// current tournament state.
type EntryRepository struct {
	mu          sync.RWMutex
	entries     map[int64]entry.Entry
	selections  map[int64][]entry.Selection
	bracketRepo *BracketRepository
	nextEntryID int64
	nextPickID  int64
}

func NewEntryRepository(bracketRepo *BracketRepository) *EntryRepository {
	return &EntryRepository{
		entries:     make(map[int64]entry.Entry),
		selections:  make(map[int64][]entry.Selection),
		bracketRepo: bracketRepo,
		nextEntryID: 1,
		nextPickID:  1,
	}
}

func (r *EntryRepository) Create(_ context.Context, e entry.Entry, selections []entry.Selection) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextEntryID
	r.nextEntryID++

	rows := make([]entry.Selection, 0, len(selections))
	for _, sel := range selections {
		sel.ID = r.nextPickID
		r.nextPickID++
		sel.EntryID = e.ID
		rows = append(rows, sel)
	}

	r.entries[e.ID] = e
	r.selections[e.ID] = rows
	return e.ID, nil
}

func (r *EntryRepository) GetByID(_ context.Context, id int64) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e, ok, nil
}

func (r *EntryRepository) ListSelections(_ context.Context, entryID int64) ([]entry.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Selection, 0, len(r.selections[entryID]))
	out = append(out, r.selections[entryID]...)
	return out, nil
}

func (r *EntryRepository) ListWithStatus(ctx context.Context) ([]entry.Standing, error) {
	return r.listStandings(ctx, false)
}

func (r *EntryRepository) ListStandings(ctx context.Context) ([]entry.Standing, error) {
	return r.listStandings(ctx, true)
}

func (r *EntryRepository) listStandings(ctx context.Context, byScore bool) ([]entry.Standing, error) {
	teams, err := r.bracketRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	statusByTeam := make(map[string]struct {
		eliminated bool
		round      int
	}, len(teams))
	for _, team := range teams {
		statusByTeam[entry.TeamKey(team.Name, team.Region)] = struct {
			eliminated bool
			round      int
		}{team.Eliminated, team.Round}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Standing, 0, len(r.entries))
	for id, e := range r.entries {
		rows := r.selections[id]
		statuses := make([]entry.SelectionStatus, 0, len(rows))
		for _, sel := range rows {
			status := entry.SelectionStatus{Selection: sel, RoundReached: 1}
			if teamStatus, ok := statusByTeam[entry.TeamKey(sel.TeamName, sel.Region)]; ok {
				status.IsEliminated = teamStatus.eliminated
				status.RoundReached = teamStatus.round
			}
			statuses = append(statuses, status)
		}
		out = append(out, entry.Standing{Entry: e, Selections: statuses})
	}

	if byScore {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Entry.Score != out[j].Entry.Score {
				return out[i].Entry.Score > out[j].Entry.Score
			}
			return out[i].Entry.PlayerName < out[j].Entry.PlayerName
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Entry.ID < out[j].Entry.ID
		})
	}

	return out, nil
}

func (r *EntryRepository) Update(_ context.Context, id int64, playerName, nickname, email string, hasPaid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("entry %d: %w", id, entry.ErrNotFound)
	}

	e.PlayerName = playerName
	e.Nickname = nickname
	e.Email = email
	e.HasPaid = hasPaid
	r.entries[id] = e
	return nil
}

func (r *EntryRepository) SetPaid(_ context.Context, id int64, hasPaid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("entry %d: %w", id, entry.ErrNotFound)
	}

	e.HasPaid = hasPaid
	r.entries[id] = e
	return nil
}

func (r *EntryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
	delete(r.selections, id)
	return nil
}

func (r *EntryRepository) ApplyTeamPoints(_ context.Context, points []entry.TeamPoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pointsByTeam := make(map[string]int, len(points))
	for _, row := range points {
		pointsByTeam[entry.TeamKey(row.TeamName, row.Region)] = row.Points
	}

	for entryID, rows := range r.selections {
		total := 0
		for idx := range rows {
			rows[idx].PointsEarned = pointsByTeam[entry.TeamKey(rows[idx].TeamName, rows[idx].Region)]
			total += rows[idx].PointsEarned
		}
		r.selections[entryID] = rows

		e := r.entries[entryID]
		e.Score = total
		r.entries[entryID] = e
	}

	return nil
}

func (r *EntryRepository) RecalculateScores(ctx context.Context, compute func(teams []bracket.Team) []entry.TeamPoints) error {
	teams, err := r.bracketRepo.List(ctx)
	if err != nil {
		return err
	}

	return r.ApplyTeamPoints(ctx, compute(teams))
}

func (r *EntryRepository) ListRecipients(_ context.Context) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}
