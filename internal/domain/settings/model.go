package settings

import (
	"fmt"

	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

// Keys for the system_settings table.
const (
	KeyEntriesOpen       = "entries_open"
	KeyTeamsVisible      = "teams_visible"
	KeyFinalFourMatchups = "final_four_matchups"
)

// Matchups fixes which regions meet in each national semifinal.
type Matchups struct {
	Semifinal1 [2]string `json:"semifinal1"`
	Semifinal2 [2]string `json:"semifinal2"`
}

// DefaultMatchups returns the standard region pairing.
func DefaultMatchups() Matchups {
	return Matchups{
		Semifinal1: [2]string{bracket.RegionEast, bracket.RegionWest},
		Semifinal2: [2]string{bracket.RegionSouth, bracket.RegionMidwest},
	}
}

// Defaults used whenever a key has never been written. Reads never
// insert rows; only an explicit save persists a value.
const (
	DefaultEntriesOpen  = true
	DefaultTeamsVisible = false
)

func (m Matchups) Validate() error {
	seen := make(map[string]struct{}, 4)
	for _, region := range []string{m.Semifinal1[0], m.Semifinal1[1], m.Semifinal2[0], m.Semifinal2[1]} {
		if !bracket.ValidRegion(region) {
			return fmt.Errorf("unknown region %q", region)
		}
		if _, dup := seen[region]; dup {
			return fmt.Errorf("region %q appears twice", region)
		}
		seen[region] = struct{}{}
	}

	return nil
}
