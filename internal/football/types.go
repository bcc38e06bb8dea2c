package football

import (
	"time"

	"github.com/shopspring/decimal"
)

// envelope is the common api-sports response wrapper
type envelope[T any] struct {
	Response T `json:"response"`
}

// Fixture is one entry of GET /fixtures
type Fixture struct {
	Fixture struct {
		ID   int64     `json:"id"`
		Date time.Time `json:"date"`
	} `json:"fixture"`
	League struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Season int    `json:"season"`
	} `json:"league"`
	Teams struct {
		Home Team `json:"home"`
		Away Team `json:"away"`
	} `json:"teams"`
}

// Team identifies a side of a fixture
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnderOver counts matches on each side of a goal line
type UnderOver struct {
	Over  int `json:"over"`
	Under int `json:"under"`
}

// Split is a home/away/total breakdown of a counted statistic
type Split struct {
	Home  int `json:"home"`
	Away  int `json:"away"`
	Total int `json:"total"`
}

// TeamStatistics is the subset of GET /teams/statistics used for predictions
type TeamStatistics struct {
	Fixtures struct {
		Wins  Split `json:"wins"`
		Draws Split `json:"draws"`
		Loses Split `json:"loses"`
	} `json:"fixtures"`
	Goals struct {
		For struct {
			Total   Split `json:"total"`
			Average struct {
				Home  decimal.Decimal `json:"home"`
				Away  decimal.Decimal `json:"away"`
				Total decimal.Decimal `json:"total"` // Served as a string, e.g. "1.7"
			} `json:"average"`
			UnderOver map[string]UnderOver `json:"under_over"`
		} `json:"for"`
		Against struct {
			Total Split `json:"total"`
		} `json:"against"`
	} `json:"goals"`
}

// Over25Pct returns the share (0-100) of the team's matches that went over 2.5 goals
func (s *TeamStatistics) Over25Pct() decimal.Decimal {
	line, ok := s.Goals.For.UnderOver["2.5"]
	if !ok || line.Over+line.Under == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(line.Over)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(line.Over + line.Under)))
}
