package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
	"github.com/riskibarqy/bracket-pool/internal/domain/entry"
	"github.com/riskibarqy/bracket-pool/internal/platform/resilience"
)

const recomputeFlightKey = "scoring:recompute"

// AdvancingTeam is one caller-reported tournament result for the bulk
// scoring path. Seed and round come from the caller, not from the
// stored bracket.
type AdvancingTeam struct {
	TeamName     string
	Region       string
	Seed         int
	RoundReached int
}

// ScoringService rewrites every selection's earned points and every
// entry score. Recompute is idempotent, so concurrent callers share
// one pass through the single-flight group.
type ScoringService struct {
	entryRepo       entry.Repository
	standings       *StandingsService
	recomputeFlight resilience.SingleFlight
	logger          *slog.Logger
}

func NewScoringService(entryRepo entry.Repository, standings *StandingsService, logger *slog.Logger) *ScoringService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScoringService{
		entryRepo: entryRepo,
		standings: standings,
		logger:    logger,
	}
}

// Recompute derives cumulative points for every team and persists all
// selection points and entry totals. The bracket read and every write
// happen in one repository transaction.
func (s *ScoringService) Recompute(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Recompute")
	defer span.End()

	_, err, _ := s.recomputeFlight.Do(recomputeFlightKey, func() (any, error) {
		return nil, s.recomputeOnce(ctx)
	})
	return err
}

func (s *ScoringService) recomputeOnce(ctx context.Context) error {
	teamCount := 0
	err := s.entryRepo.RecalculateScores(ctx, func(teams []bracket.Team) []entry.TeamPoints {
		teamCount = len(teams)

		points := make([]entry.TeamPoints, 0, len(teams))
		for _, team := range teams {
			points = append(points, entry.TeamPoints{
				TeamName: team.Name,
				Region:   team.Region,
				Points:   bracket.CumulativePoints(team),
			})
		}
		return points
	})
	if err != nil {
		return fmt.Errorf("recalculate scores: %w", err)
	}
	if s.standings != nil {
		s.standings.Invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "scores recomputed", "teams", teamCount)
	return nil
}

// ScoreAdvancingTeams replaces every selection's points with the
// seed-doubling value of the caller's reported results, each team at
// its own round. Names that match no selection change nothing.
func (s *ScoringService) ScoreAdvancingTeams(ctx context.Context, teams []AdvancingTeam) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreAdvancingTeams")
	defer span.End()

	if len(teams) == 0 {
		return 0, fmt.Errorf("%w: no teams given", ErrInvalidInput)
	}

	points := make([]entry.TeamPoints, 0, len(teams))
	for _, team := range teams {
		if team.TeamName == "" {
			return 0, fmt.Errorf("%w: team name is required", ErrInvalidInput)
		}
		if !bracket.ValidRegion(team.Region) {
			return 0, fmt.Errorf("%w: unknown region %q for team %s", ErrInvalidInput, team.Region, team.TeamName)
		}
		if team.Seed < bracket.MinSeed || team.Seed > bracket.MaxSeed {
			return 0, fmt.Errorf("%w: seed %d is out of range for team %s", ErrInvalidInput, team.Seed, team.TeamName)
		}
		if !bracket.ValidRound(team.RoundReached) {
			return 0, fmt.Errorf("%w: round %d is out of range for team %s", ErrInvalidInput, team.RoundReached, team.TeamName)
		}

		points = append(points, entry.TeamPoints{
			TeamName: team.TeamName,
			Region:   team.Region,
			Points:   bracket.AdvancementPoints(team.Seed, team.RoundReached),
		})
	}

	if err := s.entryRepo.ApplyTeamPoints(ctx, points); err != nil {
		return 0, fmt.Errorf("apply team points: %w", err)
	}
	if s.standings != nil {
		s.standings.Invalidate(ctx)
	}

	s.logger.InfoContext(ctx, "advancing teams scored", "teams", len(points))
	return len(points), nil
}
