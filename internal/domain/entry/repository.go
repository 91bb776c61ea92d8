package entry

import (
	"context"
	"errors"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

// ErrNotFound reports a write against an entry row that does not exist.
var ErrNotFound = errors.New("entry not found")

// Repository describes entry persistence needs from use cases.
type Repository interface {
	// Create inserts the entry and its selections in one transaction
	// and returns the new entry id.
	Create(ctx context.Context, e Entry, selections []Selection) (int64, error)
	GetByID(ctx context.Context, id int64) (Entry, bool, error)
	ListSelections(ctx context.Context, entryID int64) ([]Selection, error)
	// ListWithStatus returns every entry newest first, each with its
	// selections joined against the live bracket state.
	ListWithStatus(ctx context.Context) ([]Standing, error)
	// ListStandings returns entries ordered by score descending.
	ListStandings(ctx context.Context) ([]Standing, error)
	Update(ctx context.Context, id int64, playerName, nickname, email string, hasPaid bool) error
	SetPaid(ctx context.Context, id int64, hasPaid bool) error
	// Delete removes the entry and its selections in one transaction.
	Delete(ctx context.Context, id int64) error
	// ApplyTeamPoints rewrites all selection points and entry scores in
	// one transaction: every points_earned is zeroed, each listed team's
	// value is written to every selection of that team, and every
	// entry's score becomes the sum of its selections.
	ApplyTeamPoints(ctx context.Context, points []TeamPoints) error
	// RecalculateScores reads the bracket and rewrites all selection
	// points and entry scores in one transaction. compute maps the
	// teams seen by that transaction to their point values, so scores
	// never mix states from before and after a concurrent bracket
	// write.
	RecalculateScores(ctx context.Context, compute func(teams []bracket.Team) []TeamPoints) error
	// ListRecipients returns entries deduplicated by email address.
	ListRecipients(ctx context.Context) ([]Entry, error)
}
