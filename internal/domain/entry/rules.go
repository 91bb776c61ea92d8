package entry

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

var (
	ErrNoSelections      = errors.New("no teams selected")
	ErrBudgetMismatch    = errors.New("selection cost must equal the budget")
	ErrUnknownTeam       = errors.New("selected team is not in the bracket")
	ErrDuplicateTeam     = errors.New("duplicate team in selections")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrMissingEntryField = errors.New("missing entry field")
)

// Rules stores entry submission validation parameters.
type Rules struct {
	Budget int
}

func DefaultRules() Rules {
	return Rules{Budget: bracket.SelectionBudget}
}

// ValidateSelections enforces the exact-budget rule against a set of
// picks. knownTeams maps "name|region" to the bracket teams the picks
// must reference; pass nil to skip the existence check.
func ValidateSelections(selections []Selection, rules Rules, knownTeams map[string]bracket.Team) error {
	if len(selections) == 0 {
		return ErrNoSelections
	}

	seen := make(map[string]struct{}, len(selections))
	total := 0
	for _, sel := range selections {
		if sel.TeamName == "" {
			return fmt.Errorf("%w: team name is required", ErrInvalidSelection)
		}
		if !bracket.ValidRegion(sel.Region) {
			return fmt.Errorf("%w: unknown region %q for team %s", ErrInvalidSelection, sel.Region, sel.TeamName)
		}
		if sel.Cost <= 0 {
			return fmt.Errorf("%w: cost must be greater than zero for team %s", ErrInvalidSelection, sel.TeamName)
		}

		key := TeamKey(sel.TeamName, sel.Region)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("%w: %s (%s)", ErrDuplicateTeam, sel.TeamName, sel.Region)
		}
		seen[key] = struct{}{}

		if knownTeams != nil {
			if _, ok := knownTeams[key]; !ok {
				return fmt.Errorf("%w: %s (%s)", ErrUnknownTeam, sel.TeamName, sel.Region)
			}
		}

		total += sel.Cost
	}

	if total != rules.Budget {
		return fmt.Errorf("%w: budget=%d used=%d", ErrBudgetMismatch, rules.Budget, total)
	}

	return nil
}

// TeamKey builds the lookup key joining selections to bracket teams.
func TeamKey(teamName, region string) string {
	return teamName + "|" + region
}

func (e Entry) ValidateBasic() error {
	if e.PlayerName == "" {
		return fmt.Errorf("%w: playerName", ErrMissingEntryField)
	}
	if e.Email == "" {
		return fmt.Errorf("%w: email", ErrMissingEntryField)
	}
	if e.Nickname == "" {
		return fmt.Errorf("%w: nickname", ErrMissingEntryField)
	}

	return nil
}
