package bracket

// CumulativePoints returns the points a team is worth under the
// round-by-round payout. Each threshold pays on top of the previous
// ones, so a deep run accumulates every earlier bonus:
//
//	reached round of 32        +1×seed
//	reached sweet sixteen      +2×seed
//	reached elite eight        +3×seed
//	reached final four         +4×seed +5
//	reached the final          +5×seed +10
//	won the championship       +6×seed +15
//
// The final-four, finalist and champion thresholds also honor the
// stored flags, so a row flagged champion scores as champion even if
// its ordinal round was never moved past an earlier value.
//
// A team eliminated in the first round is worth nothing.
func CumulativePoints(t Team) int {
	if t.Eliminated && t.Round <= RoundFirst {
		return 0
	}

	points := 0
	if t.Round >= RoundOf32 {
		points += t.Seed
	}
	if t.Round >= RoundSweet16 {
		points += t.Seed * 2
	}
	if t.Round >= RoundElite8 {
		points += t.Seed * 3
	}
	if t.Round >= RoundFinalFour || t.FinalFour {
		points += t.Seed*4 + 5
	}
	if t.Round >= RoundFinal || t.Finalist {
		points += t.Seed*5 + 10
	}
	if t.Round >= RoundChampion || t.Champion {
		points += t.Seed*6 + 15
	}

	return points
}

// AdvancementPoints is the alternate payout used by the bulk scoring
// path: seed doubled for every round survived past the first. It is a
// different schedule from CumulativePoints and the two are never mixed
// in one recompute.
func AdvancementPoints(seed, roundReached int) int {
	if roundReached <= RoundFirst {
		return seed
	}

	points := seed
	for round := RoundFirst; round < roundReached; round++ {
		points *= 2
	}

	return points
}
