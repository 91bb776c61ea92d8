package bracket

import "testing"

func TestCumulativePoints(t *testing.T) {
	tests := []struct {
		name string
		team Team
		want int
	}{
		{
			name: "still in first round",
			team: Team{Seed: 4, Round: RoundFirst},
			want: 0,
		},
		{
			name: "eliminated in first round",
			team: Team{Seed: 12, Round: RoundFirst, Eliminated: true},
			want: 0,
		},
		{
			name: "reached round of 32",
			team: Team{Seed: 7, Round: RoundOf32},
			want: 7,
		},
		{
			name: "reached sweet sixteen",
			team: Team{Seed: 7, Round: RoundSweet16},
			want: 7 + 14,
		},
		{
			name: "reached elite eight",
			team: Team{Seed: 7, Round: RoundElite8},
			want: 7 + 14 + 21,
		},
		{
			name: "reached final four",
			team: Team{Seed: 2, Round: RoundFinalFour, FinalFour: true},
			want: 2 + 4 + 6 + (8 + 5),
		},
		{
			name: "reached the final",
			team: Team{Seed: 1, Round: RoundFinal, FinalFour: true, Finalist: true},
			want: 1 + 2 + 3 + (4 + 5) + (5 + 10),
		},
		{
			name: "seed three champion",
			team: Team{Seed: 3, Round: RoundChampion, FinalFour: true, Finalist: true, Champion: true},
			want: 93,
		},
		{
			name: "champion flag without ordinal round",
			team: Team{Seed: 3, Round: RoundElite8, FinalFour: true, Finalist: true, Champion: true},
			want: 3 + 6 + 9 + (12 + 5) + (15 + 10) + (18 + 15),
		},
		{
			name: "eliminated after a deep run keeps its points",
			team: Team{Seed: 5, Round: RoundSweet16, Eliminated: true},
			want: 5 + 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CumulativePoints(tt.team); got != tt.want {
				t.Fatalf("expected %d points, got %d", tt.want, got)
			}
		})
	}
}

func TestAdvancementPoints(t *testing.T) {
	tests := []struct {
		seed  int
		round int
		want  int
	}{
		{seed: 3, round: RoundFirst, want: 3},
		{seed: 3, round: RoundOf32, want: 6},
		{seed: 3, round: RoundSweet16, want: 12},
		{seed: 3, round: RoundElite8, want: 24},
		{seed: 3, round: RoundFinalFour, want: 48},
		{seed: 3, round: RoundFinal, want: 96},
		{seed: 3, round: RoundChampion, want: 192},
		{seed: 16, round: RoundOf32, want: 32},
	}

	for _, tt := range tests {
		if got := AdvancementPoints(tt.seed, tt.round); got != tt.want {
			t.Fatalf("seed=%d round=%d: expected %d, got %d", tt.seed, tt.round, tt.want, got)
		}
	}
}

func TestWithRoundDerivesFlags(t *testing.T) {
	team := Team{Seed: 1, Round: RoundFirst}

	moved := team.WithRound(RoundFinalFour)
	if !moved.FinalFour || moved.Finalist || moved.Champion {
		t.Fatalf("unexpected flags at final four: %+v", moved)
	}

	moved = team.WithRound(RoundChampion)
	if !moved.FinalFour || !moved.Finalist || !moved.Champion {
		t.Fatalf("expected all flags set for champion, got %+v", moved)
	}

	moved = moved.WithRound(RoundFirst)
	if moved.FinalFour || moved.Finalist || moved.Champion {
		t.Fatalf("expected flags cleared back at round one, got %+v", moved)
	}
}
