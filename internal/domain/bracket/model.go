package bracket

import "fmt"

// Region identifies one quarter of the tournament field.
type Region = string

const (
	RegionEast    Region = "East"
	RegionWest    Region = "West"
	RegionSouth   Region = "South"
	RegionMidwest Region = "Midwest"
)

// AllRegions lists regions in canonical display order.
var AllRegions = []Region{RegionEast, RegionWest, RegionSouth, RegionMidwest}

// Tournament rounds as a single ordinal. A team's Round is the deepest
// round it has reached; flags below Round 5 carry no extra meaning.
const (
	RoundFirst      = 1
	RoundOf32       = 2
	RoundSweet16    = 3
	RoundElite8     = 4
	RoundFinalFour  = 5
	RoundFinal      = 6
	RoundChampion   = 7
	MinSeed         = 1
	MaxSeed         = 16
	SelectionBudget = 200
)

// Team is one tournament_progress row: a real team's position in the
// bracket. FinalFour, Finalist and Champion are derived from Round on
// every write but kept as stored columns so externally imported rows
// keep their meaning.
type Team struct {
	ID         int64
	Name       string
	Region     Region
	Seed       int
	Round      int
	Eliminated bool
	FinalFour  bool
	Finalist   bool
	Champion   bool
}

// WithRound returns a copy moved to the given round with flags derived.
func (t Team) WithRound(round int) Team {
	t.Round = round
	t.FinalFour = round >= RoundFinalFour
	t.Finalist = round >= RoundFinal
	t.Champion = round >= RoundChampion
	return t
}

func ValidRegion(region string) bool {
	switch region {
	case RegionEast, RegionWest, RegionSouth, RegionMidwest:
		return true
	default:
		return false
	}
}

func ValidRound(round int) bool {
	return round >= RoundFirst && round <= RoundChampion
}

func (t Team) ValidateBasic() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if !ValidRegion(t.Region) {
		return fmt.Errorf("unknown region %q", t.Region)
	}
	if t.Seed < MinSeed || t.Seed > MaxSeed {
		return fmt.Errorf("seed must be between %d and %d, got %d", MinSeed, MaxSeed, t.Seed)
	}
	if !ValidRound(t.Round) {
		return fmt.Errorf("round must be between %d and %d, got %d", RoundFirst, RoundChampion, t.Round)
	}

	return nil
}
