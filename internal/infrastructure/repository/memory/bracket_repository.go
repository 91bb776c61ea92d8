package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

type BracketRepository struct {
	mu     sync.RWMutex
	teams  map[int64]bracket.Team
	nextID int64
}

func NewBracketRepository(teams []bracket.Team) *BracketRepository {
	r := &BracketRepository{teams: make(map[int64]bracket.Team, len(teams)), nextID: 1}
	for _, item := range teams {
		if item.ID == 0 {
			item.ID = r.nextID
		}
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.teams[item.ID] = item
	}

	return r
}

func (r *BracketRepository) List(_ context.Context) ([]bracket.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bracket.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		if out[i].Seed != out[j].Seed {
			return out[i].Seed < out[j].Seed
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *BracketRepository) GetByIDs(_ context.Context, ids []int64) ([]bracket.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bracket.Team, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.teams[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *BracketRepository) UpdatePair(_ context.Context, winner, loser bracket.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[winner.ID]; !ok {
		return fmt.Errorf("team %d: %w", winner.ID, bracket.ErrNotFound)
	}
	if _, ok := r.teams[loser.ID]; !ok {
		return fmt.Errorf("team %d: %w", loser.ID, bracket.ErrNotFound)
	}

	r.teams[winner.ID] = winner
	r.teams[loser.ID] = loser
	return nil
}

func (r *BracketRepository) ResetRounds(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.teams {
		item = item.WithRound(bracket.RoundFirst)
		item.Eliminated = false
		r.teams[id] = item
	}

	return nil
}

func (r *BracketRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.teams), nil
}

func (r *BracketRepository) InsertTeams(_ context.Context, teams []bracket.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range teams {
		if item.ID == 0 {
			item.ID = r.nextID
		}
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.teams[item.ID] = item
	}

	return nil
}
