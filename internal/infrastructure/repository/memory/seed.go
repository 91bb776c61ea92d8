package memory

import (
	"github.com/riskibarqy/bracket-pool/internal/domain/bracket"
)

// SeedTeams returns a small bracket with one team per seed line in
// each region. Used by tests and local development.
func SeedTeams() []bracket.Team {
	names := map[bracket.Region][]string{
		bracket.RegionEast:    {"Duke", "Marquette", "Baylor", "Auburn"},
		bracket.RegionWest:    {"Gonzaga", "Arizona", "Kansas", "Alabama"},
		bracket.RegionSouth:   {"Houston", "Tennessee", "Kentucky", "Illinois"},
		bracket.RegionMidwest: {"Purdue", "Creighton", "Wisconsin", "Iowa State"},
	}

	out := make([]bracket.Team, 0, 16)
	id := int64(1)
	for _, region := range bracket.AllRegions {
		for idx, name := range names[region] {
			out = append(out, bracket.Team{
				ID:     id,
				Name:   name,
				Region: region,
				Seed:   idx + 1,
				Round:  bracket.RoundFirst,
			})
			id++
		}
	}

	return out
}
