package rules

import (
	"testing"

	"github.com/lox/belote/internal/cards"
	"github.com/stretchr/testify/assert"
)

// rankTricks builds a round where trick i holds the four cards of
// cards.Ranks[i], taken by winners[i]. With hearts as trump the tricks are
// worth 0, 0, 14, 40, 26, 12, 16 and 44 points.
func rankTricks(winners [TricksPerRound]int) []CompletedTrick {
	tricks := make([]CompletedTrick, 0, TricksPerRound)
	for i, r := range cards.Ranks {
		plays := make([]Play, 0, 4)
		for _, s := range cards.Suits {
			plays = append(plays, Play{Seat: s.String(), Card: cards.New(r, s)})
		}
		tricks = append(tricks, CompletedTrick{Plays: plays, Winner: plays[0], WinnerTeam: winners[i]})
	}
	return tricks
}

func TestTeamTrickPoints(t *testing.T) {
	t.Parallel()

	tricks := rankTricks([TricksPerRound]int{2, 2, 2, 1, 1, 2, 2, 1})
	assert.Equal(t, 40+26+44+LastTrickBonus, TeamTrickPoints(tricks, cards.Hearts, 1))
	assert.Equal(t, 14+12+16, TeamTrickPoints(tricks, cards.Hearts, 2))

	sweep := rankTricks([TricksPerRound]int{1, 1, 1, 1, 1, 1, 1, 1})
	assert.Equal(t, cards.TotalPoints+LastTrickBonus+CleanSweepBonus, TeamTrickPoints(sweep, cards.Hearts, 1))
	assert.Zero(t, TeamTrickPoints(sweep, cards.Hearts, 2))
}

func TestScoreRound(t *testing.T) {
	t.Parallel()

	team1Strong := rankTricks([TricksPerRound]int{2, 2, 2, 1, 1, 2, 2, 1})

	tests := []struct {
		name      string
		tricks    []CompletedTrick
		trumpTeam int
		bonus     int
		want1     int
		want2     int
		failed    int
	}{
		{
			name:      "trump team passes without bonus",
			tricks:    team1Strong,
			trumpTeam: 1,
			want1:     130,
			want2:     42,
		},
		{
			name:      "trump team passes and takes the bonus",
			tricks:    team1Strong,
			trumpTeam: 1,
			bonus:     50,
			want1:     180,
			want2:     42,
		},
		{
			name:      "trump team falls short and opponents take the pool",
			tricks:    team1Strong,
			trumpTeam: 2,
			bonus:     50,
			want1:     BasePool + 50,
			want2:     0,
			failed:    2,
		},
		{
			name:      "exactly the pass mark is enough",
			tricks:    rankTricks([TricksPerRound]int{2, 2, 2, 1, 1, 2, 1, 2}),
			trumpTeam: 1,
			want1:     82,
			want2:     14 + 12 + 44 + LastTrickBonus,
		},
		{
			name:      "clean sweep",
			tricks:    rankTricks([TricksPerRound]int{1, 1, 1, 1, 1, 1, 1, 1}),
			trumpTeam: 2,
			want1:     BasePool,
			want2:     0,
			failed:    2,
		},
		{
			name:      "no trump team splits the bonus",
			tricks:    team1Strong,
			trumpTeam: 0,
			bonus:     20,
			want1:     140,
			want2:     52,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ScoreRound(tc.tricks, cards.Hearts, tc.trumpTeam, tc.bonus)
			assert.Equal(t, tc.want1, got.Team1)
			assert.Equal(t, tc.want2, got.Team2)
			assert.Equal(t, tc.failed, got.Failed)
			assert.Equal(t, (BasePool+tc.bonus)/2+1, got.PassMark)
			if tc.failed != 0 {
				assert.Equal(t, BasePool+tc.bonus, got.Team1+got.Team2)
				assert.Zero(t, got.Score(tc.failed))
			}
		})
	}
}
