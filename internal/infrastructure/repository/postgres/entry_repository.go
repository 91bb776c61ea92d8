package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
)

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = "id, player_name, email, nickname, score, has_paid, submission_date"

const selectionStatusQuery = `
	SELECT ts.id, ts.entry_id, ts.team_name, ts.region, ts.seed, ts.cost, ts.points_earned,
	       COALESCE(tp.eliminated, FALSE) AS is_eliminated,
	       COALESCE(tp.round, 1) AS round_reached
	FROM team_selections ts
	LEFT JOIN tournament_progress tp
	  ON tp.team_name = ts.team_name AND tp.region = ts.region`

func (r *EntryRepository) Create(ctx context.Context, e entry.Entry, selections []entry.Selection) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create entry tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertEntry = `
		INSERT INTO entries (player_name, email, nickname, score, has_paid, submission_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var entryID int64
	if err := tx.GetContext(ctx, &entryID, insertEntry,
		e.PlayerName, e.Email, e.Nickname, e.Score, e.HasPaid, e.SubmissionDate); err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	const insertSelection = `
		INSERT INTO team_selections (entry_id, team_name, region, seed, cost, points_earned)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, sel := range selections {
		if _, err := tx.ExecContext(ctx, insertSelection,
			entryID, sel.TeamName, sel.Region, sel.Seed, sel.Cost, sel.PointsEarned); err != nil {
			return 0, fmt.Errorf("insert selection %q: %w", sel.TeamName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create entry tx: %w", err)
	}

	return entryID, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id int64) (entry.Entry, bool, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE id = $1"

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("select entry %d: %w", id, err)
	}

	return entryFromRow(row), true, nil
}

func (r *EntryRepository) ListSelections(ctx context.Context, entryID int64) ([]entry.Selection, error) {
	const query = `
		SELECT id, entry_id, team_name, region, seed, cost, points_earned
		FROM team_selections
		WHERE entry_id = $1
		ORDER BY id`

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, entryID); err != nil {
		return nil, fmt.Errorf("select selections for entry %d: %w", entryID, err)
	}

	out := make([]entry.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, selectionFromRow(row))
	}

	return out, nil
}

func (r *EntryRepository) ListWithStatus(ctx context.Context) ([]entry.Standing, error) {
	return r.listStandings(ctx, "ORDER BY id DESC")
}

func (r *EntryRepository) ListStandings(ctx context.Context) ([]entry.Standing, error) {
	return r.listStandings(ctx, "ORDER BY score DESC, player_name ASC, id ASC")
}

func (r *EntryRepository) listStandings(ctx context.Context, orderBy string) ([]entry.Standing, error) {
	query := "SELECT " + entryColumns + " FROM entries " + orderBy

	var entryRows []entryTableModel
	if err := r.db.SelectContext(ctx, &entryRows, query); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	var selectionRows []selectionStatusModel
	if err := r.db.SelectContext(ctx, &selectionRows, selectionStatusQuery+" ORDER BY ts.id"); err != nil {
		return nil, fmt.Errorf("select selections with status: %w", err)
	}

	byEntry := make(map[int64][]entry.SelectionStatus, len(entryRows))
	for _, row := range selectionRows {
		byEntry[row.EntryID] = append(byEntry[row.EntryID], entry.SelectionStatus{
			Selection:    selectionFromRow(row.selectionTableModel),
			IsEliminated: row.IsEliminated,
			RoundReached: row.RoundReached,
		})
	}

	out := make([]entry.Standing, 0, len(entryRows))
	for _, row := range entryRows {
		out = append(out, entry.Standing{
			Entry:      entryFromRow(row),
			Selections: byEntry[row.ID],
		})
	}

	return out, nil
}

func (r *EntryRepository) Update(ctx context.Context, id int64, playerName, nickname, email string, hasPaid bool) error {
	const query = `
		UPDATE entries
		SET player_name = $1, nickname = $2, email = $3, has_paid = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query, playerName, nickname, email, hasPaid, id)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", id, err)
	}

	return requireAffected(res, fmt.Sprintf("entry %d", id), entry.ErrNotFound)
}

func (r *EntryRepository) SetPaid(ctx context.Context, id int64, hasPaid bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE entries SET has_paid = $1 WHERE id = $2", hasPaid, id)
	if err != nil {
		return fmt.Errorf("update entry %d payment: %w", id, err)
	}

	return requireAffected(res, fmt.Sprintf("entry %d", id), entry.ErrNotFound)
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete entry tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_selections WHERE entry_id = $1", id); err != nil {
		return fmt.Errorf("delete selections for entry %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("entry %d", id), entry.ErrNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete entry tx: %w", err)
	}

	return nil
}

func (r *EntryRepository) ApplyTeamPoints(ctx context.Context, points []entry.TeamPoints) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin apply team points tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := applyTeamPointsTx(ctx, tx, points); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply team points tx: %w", err)
	}

	return nil
}

// RecalculateScores reads tournament_progress and rewrites all points
// inside one transaction, so the computed values always match the
// bracket state the transaction saw.
func (r *EntryRepository) RecalculateScores(ctx context.Context, compute func(teams []bracket.Team) []entry.TeamPoints) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin recalculate scores tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := "SELECT " + teamColumns + " FROM tournament_progress ORDER BY region, seed, id"

	var rows []teamTableModel
	if err := tx.SelectContext(ctx, &rows, query); err != nil {
		return fmt.Errorf("select teams for recalculation: %w", err)
	}

	teams := make([]bracket.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, teamFromRow(row))
	}

	if err := applyTeamPointsTx(ctx, tx, compute(teams)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recalculate scores tx: %w", err)
	}

	return nil
}

func applyTeamPointsTx(ctx context.Context, tx *sqlx.Tx, points []entry.TeamPoints) error {
	if _, err := tx.ExecContext(ctx, "UPDATE team_selections SET points_earned = 0"); err != nil {
		return fmt.Errorf("zero selection points: %w", err)
	}

	const setPoints = `
		UPDATE team_selections
		SET points_earned = $1
		WHERE team_name = $2 AND region = $3`

	for _, tp := range points {
		if _, err := tx.ExecContext(ctx, setPoints, tp.Points, tp.TeamName, tp.Region); err != nil {
			return fmt.Errorf("set points for team %q: %w", tp.TeamName, err)
		}
	}

	const sumScores = `
		UPDATE entries
		SET score = COALESCE(
			(SELECT SUM(ts.points_earned) FROM team_selections ts WHERE ts.entry_id = entries.id), 0)`

	if _, err := tx.ExecContext(ctx, sumScores); err != nil {
		return fmt.Errorf("recompute entry scores: %w", err)
	}

	return nil
}

func (r *EntryRepository) ListRecipients(ctx context.Context) ([]entry.Entry, error) {
	query := "SELECT DISTINCT ON (LOWER(email)) " + entryColumns + " FROM entries ORDER BY LOWER(email), id"

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select mail recipients: %w", err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}

	return out, nil
}

func entryFromRow(row entryTableModel) entry.Entry {
	return entry.Entry{
		ID:             row.ID,
		PlayerName:     row.PlayerName,
		Email:          row.Email,
		Nickname:       row.Nickname,
		Score:          row.Score,
		SubmissionDate: row.SubmissionDate,
		HasPaid:        row.HasPaid,
	}
}

func selectionFromRow(row selectionTableModel) entry.Selection {
	return entry.Selection{
		ID:           row.ID,
		EntryID:      row.EntryID,
		TeamName:     row.TeamName,
		Region:       row.Region,
		Seed:         row.Seed,
		Cost:         row.Cost,
		PointsEarned: row.PointsEarned,
	}
}
