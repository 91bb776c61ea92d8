package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

// TournamentService drives the bracket state machine. Every matchup
// result moves exactly two teams, one forward and one out, and every
// transition can be undone by restoring the prior rounds verbatim.
type TournamentService struct {
	bracketRepo bracket.Repository
	scoring     *ScoringService
	logger      *slog.Logger
}

func NewTournamentService(bracketRepo bracket.Repository, scoring *ScoringService, logger *slog.Logger) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TournamentService{
		bracketRepo: bracketRepo,
		scoring:     scoring,
		logger:      logger,
	}
}

func (s *TournamentService) List(ctx context.Context) ([]bracket.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	teams, err := s.bracketRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// Advance records a regular matchup result. The winner moves to
// toRound and the loser is eliminated at its current round.
func (s *TournamentService) Advance(ctx context.Context, winnerID, loserID int64, toRound int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Advance")
	defer span.End()

	if toRound < bracket.RoundOf32 || toRound > bracket.RoundFinalFour {
		return fmt.Errorf("%w: round %d is not reachable by a regular advancement", ErrInvalidInput, toRound)
	}

	return s.resolveMatchup(ctx, winnerID, loserID, toRound)
}

// AdvanceToFinal records a national semifinal result.
func (s *TournamentService) AdvanceToFinal(ctx context.Context, winnerID, loserID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.AdvanceToFinal")
	defer span.End()

	return s.resolveMatchup(ctx, winnerID, loserID, bracket.RoundFinal)
}

// DeclareChampion records the championship result.
func (s *TournamentService) DeclareChampion(ctx context.Context, winnerID, loserID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.DeclareChampion")
	defer span.End()

	return s.resolveMatchup(ctx, winnerID, loserID, bracket.RoundChampion)
}

func (s *TournamentService) resolveMatchup(ctx context.Context, winnerID, loserID int64, toRound int) error {
	winner, loser, err := s.loadPair(ctx, winnerID, loserID)
	if err != nil {
		return err
	}

	winner = winner.WithRound(toRound)
	winner.Eliminated = false
	loser.Eliminated = true

	if err := s.bracketRepo.UpdatePair(ctx, winner, loser); err != nil {
		return fmt.Errorf("update matchup result: %w", err)
	}

	if err := s.scoring.Recompute(ctx); err != nil {
		return fmt.Errorf("recompute after advancement: %w", err)
	}

	s.logger.InfoContext(ctx, "matchup resolved",
		"winner", winner.Name, "loser", loser.Name, "round", toRound)
	return nil
}

// Undo restores both teams of a matchup to the round they held before
// the result was recorded and clears their elimination.
func (s *TournamentService) Undo(ctx context.Context, winnerID, loserID int64, previousRound int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Undo")
	defer span.End()

	if !bracket.ValidRound(previousRound) {
		return fmt.Errorf("%w: previous round must be between %d and %d",
			ErrInvalidInput, bracket.RoundFirst, bracket.RoundChampion)
	}

	winner, loser, err := s.loadPair(ctx, winnerID, loserID)
	if err != nil {
		return err
	}

	winner = winner.WithRound(previousRound)
	winner.Eliminated = false
	loser = loser.WithRound(previousRound)
	loser.Eliminated = false

	if err := s.bracketRepo.UpdatePair(ctx, winner, loser); err != nil {
		return fmt.Errorf("undo matchup result: %w", err)
	}

	if err := s.scoring.Recompute(ctx); err != nil {
		return fmt.Errorf("recompute after undo: %w", err)
	}

	s.logger.InfoContext(ctx, "matchup undone", "winner", winner.Name, "loser", loser.Name)
	return nil
}

// Reset returns every team to the first round with no eliminations and
// zeroes all scores.
func (s *TournamentService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Reset")
	defer span.End()

	if err := s.bracketRepo.ResetRounds(ctx); err != nil {
		return fmt.Errorf("reset rounds: %w", err)
	}

	if err := s.scoring.Recompute(ctx); err != nil {
		return fmt.Errorf("recompute after reset: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament reset")
	return nil
}

func (s *TournamentService) loadPair(ctx context.Context, winnerID, loserID int64) (bracket.Team, bracket.Team, error) {
	if winnerID == loserID {
		return bracket.Team{}, bracket.Team{}, fmt.Errorf("%w: winner and loser must differ", ErrInvalidInput)
	}

	teams, err := s.bracketRepo.GetByIDs(ctx, []int64{winnerID, loserID})
	if err != nil {
		return bracket.Team{}, bracket.Team{}, fmt.Errorf("get matchup teams: %w", err)
	}

	var winner, loser bracket.Team
	var haveWinner, haveLoser bool
	for _, team := range teams {
		switch team.ID {
		case winnerID:
			winner, haveWinner = team, true
		case loserID:
			loser, haveLoser = team, true
		}
	}
	if !haveWinner {
		return bracket.Team{}, bracket.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, winnerID)
	}
	if !haveLoser {
		return bracket.Team{}, bracket.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, loserID)
	}

	return winner, loser, nil
}
