package models

import (
	"time"

	"github.com/google/uuid"
)

// Winner is the predicted result of a fixture
type Winner string

const (
	WinnerHome Winner = "home"
	WinnerDraw Winner = "draw"
	WinnerAway Winner = "away"
)

// MatchPrediction is the over/under and result estimate for one upcoming fixture
type MatchPrediction struct {
	FixtureID    int64     `json:"fixture_id"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	League       string    `json:"league"`
	Kickoff      time.Time `json:"kickoff"`
	AvgGoals     float64   `json:"avg_goals"`     // Expected combined goals
	Over25Pct    int       `json:"over25_pct"`    // Confidence (0-100) the match goes over 2.5
	LikelyOver25 bool      `json:"likely_over25"` // Decided by the prediction source

	ResultPrediction
}

// ResultPrediction holds the home/draw/away probabilities (summing to 100)
type ResultPrediction struct {
	HomeWinProb     int    `json:"home_win_prob"`
	DrawProb        int    `json:"draw_prob"`
	AwayWinProb     int    `json:"away_win_prob"`
	PredictedWinner Winner `json:"predicted_winner"`
	Confidence      int    `json:"confidence"` // Probability of the predicted winner
}

// IsLikelyOver25 reports whether the source judged the match likely to exceed 2.5 goals
func (p MatchPrediction) IsLikelyOver25() bool {
	return p.LikelyOver25
}

// PredictionThresholds holds the cut-offs the source uses to flag over 2.5 matches
type PredictionThresholds struct {
	MinAvgGoals  float64 // e.g. 2.5
	MinOver25Pct int     // e.g. 10
}

// Qualifies applies the thresholds to a computed average and percentage
func (t PredictionThresholds) Qualifies(avgGoals float64, over25Pct int) bool {
	return avgGoals >= t.MinAvgGoals && over25Pct >= t.MinOver25Pct
}

// DigestEvent is the Kafka message published for every dispatched notice
type DigestEvent struct {
	ID     uuid.UUID `json:"id"`
	ChatID int64     `json:"chat_id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}
