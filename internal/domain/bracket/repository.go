package bracket

import (
	"context"
	"errors"
)

// ErrNotFound reports a write against a team row that is not in the
// bracket.
var ErrNotFound = errors.New("team not found")

// Repository describes tournament bracket persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Team, error)
	// UpdatePair writes both teams of a matchup in one transaction.
	// A missing row fails the whole pair.
	UpdatePair(ctx context.Context, winner, loser Team) error
	// ResetRounds returns every team to the first round with no flags.
	ResetRounds(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	InsertTeams(ctx context.Context, teams []Team) error
}
