package postgres

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/infrastructure/repository/memory"
)

// BootstrapConfig carries the first-run inputs: where to read the team
// field from and which admin account to create on an empty database.
type BootstrapConfig struct {
	TeamsCSVPath  string
	AdminUsername string
	AdminPassword string
}

// Bootstrap populates an empty database. Teams are imported only when
// tournament_progress has no rows, and the default admin is created
// only when admin_users is empty, so re-running it is harmless.
func Bootstrap(ctx context.Context, db *sqlx.DB, cfg BootstrapConfig) error {
	if err := bootstrapTeams(ctx, db, cfg.TeamsCSVPath); err != nil {
		return err
	}
	if err := bootstrapAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	return nil
}

func bootstrapTeams(ctx context.Context, db *sqlx.DB, csvPath string) error {
	repo := NewBracketRepository(db)

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count teams for bootstrap: %w", err)
	}
	if count > 0 {
		return nil
	}

	teams := memory.SeedTeams()
	if csvPath != "" {
		teams, err = readTeamsCSV(csvPath)
		if err != nil {
			return err
		}
	}

	if err := repo.InsertTeams(ctx, teams); err != nil {
		return fmt.Errorf("bootstrap teams: %w", err)
	}

	return nil
}

// readTeamsCSV parses rows of seed, logo URL, team name, region. The
// logo column is accepted for compatibility with exported team lists
// but never stored. A header row is skipped when the seed column is
// not numeric.
func readTeamsCSV(path string) ([]bracket.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open teams csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read teams csv: %w", err)
	}

	teams := make([]bracket.Team, 0, len(records))
	for i, record := range records {
		if len(record) < 4 {
			return nil, fmt.Errorf("teams csv row %d: expected 4 columns, got %d", i+1, len(record))
		}

		seed, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("teams csv row %d: invalid seed %q", i+1, record[0])
		}

		team := bracket.Team{
			Name:   strings.TrimSpace(record[2]),
			Region: strings.TrimSpace(record[3]),
			Seed:   seed,
			Round:  bracket.RoundFirst,
		}
		if err := team.ValidateBasic(); err != nil {
			return nil, fmt.Errorf("teams csv row %d: %w", i+1, err)
		}

		teams = append(teams, team)
	}

	if len(teams) == 0 {
		return nil, fmt.Errorf("teams csv %s has no team rows", path)
	}

	return teams, nil
}

func bootstrapAdmin(ctx context.Context, db *sqlx.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	repo := NewAdminRepository(db)

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins for bootstrap: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	if err := repo.Create(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	return nil
}
