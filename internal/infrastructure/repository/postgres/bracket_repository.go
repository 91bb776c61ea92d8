package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

type BracketRepository struct {
	db *sqlx.DB
}

func NewBracketRepository(db *sqlx.DB) *BracketRepository {
	return &BracketRepository{db: db}
}

const teamColumns = "id, team_name, region, seed, round, eliminated, final_four, finalist, champion"

func (r *BracketRepository) List(ctx context.Context) ([]bracket.Team, error) {
	query := "SELECT " + teamColumns + " FROM tournament_progress ORDER BY region, seed, id"

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select tournament teams: %w", err)
	}

	out := make([]bracket.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *BracketRepository) GetByIDs(ctx context.Context, ids []int64) ([]bracket.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT "+teamColumns+" FROM tournament_progress WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build select teams by ids query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select teams by ids: %w", err)
	}

	out := make([]bracket.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *BracketRepository) UpdatePair(ctx context.Context, winner, loser bracket.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update pair tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, team := range []bracket.Team{winner, loser} {
		if err := updateTeamTx(ctx, tx, team); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update pair tx: %w", err)
	}

	return nil
}

func updateTeamTx(ctx context.Context, tx *sqlx.Tx, team bracket.Team) error {
	const query = `
		UPDATE tournament_progress
		SET round = $1, eliminated = $2, final_four = $3, finalist = $4, champion = $5
		WHERE id = $6`

	res, err := tx.ExecContext(ctx, query,
		team.Round, team.Eliminated, team.FinalFour, team.Finalist, team.Champion, team.ID)
	if err != nil {
		return fmt.Errorf("update team %d: %w", team.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team %d rows affected: %w", team.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("team %d: %w", team.ID, bracket.ErrNotFound)
	}

	return nil
}

func (r *BracketRepository) ResetRounds(ctx context.Context) error {
	const query = `
		UPDATE tournament_progress
		SET round = $1, eliminated = FALSE, final_four = FALSE, finalist = FALSE, champion = FALSE`

	if _, err := r.db.ExecContext(ctx, query, bracket.RoundFirst); err != nil {
		return fmt.Errorf("reset tournament rounds: %w", err)
	}

	return nil
}

func (r *BracketRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tournament_progress"); err != nil {
		return 0, fmt.Errorf("count tournament teams: %w", err)
	}

	return count, nil
}

func (r *BracketRepository) InsertTeams(ctx context.Context, teams []bracket.Team) error {
	if len(teams) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert teams tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
		INSERT INTO tournament_progress (team_name, region, seed, round, eliminated, final_four, finalist, champion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, team := range teams {
		if _, err := tx.ExecContext(ctx, query,
			team.Name, team.Region, team.Seed, team.Round,
			team.Eliminated, team.FinalFour, team.Finalist, team.Champion); err != nil {
			return fmt.Errorf("insert team %q: %w", team.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert teams tx: %w", err)
	}

	return nil
}

func teamFromRow(row teamTableModel) bracket.Team {
	return bracket.Team{
		ID:         row.ID,
		Name:       row.Name,
		Region:     row.Region,
		Seed:       row.Seed,
		Round:      row.Round,
		Eliminated: row.Eliminated,
		FinalFour:  row.FinalFour,
		Finalist:   row.Finalist,
		Champion:   row.Champion,
	}
}
