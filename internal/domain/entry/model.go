package entry

import "time"

// Selection is one team picked by an entry, priced at submission time.
type Selection struct {
	ID           int64
	EntryID      int64
	TeamName     string
	Region       string
	Seed         int
	Cost         int
	PointsEarned int
}

// Entry is one submitted bracket-pool entry. Score is owned by the
// scoring recompute and never written anywhere else.
type Entry struct {
	ID             int64
	PlayerName     string
	Email          string
	Nickname       string
	Score          int
	SubmissionDate time.Time
	HasPaid        bool
}

// SelectionStatus joins a selection with its team's live bracket state
// for the admin listing and the public standings.
type SelectionStatus struct {
	Selection
	IsEliminated bool
	RoundReached int
}

// Standing is one standings row: an entry with its selections in team
// order, already sorted by score on the way out of the store.
type Standing struct {
	Entry      Entry
	Selections []SelectionStatus
}

// TeamPoints carries one team's recomputed value into the store.
type TeamPoints struct {
	TeamName string
	Region   string
	Points   int
}
