package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// ErrTimeout is returned when a single API request exceeds the configured timeout
var ErrTimeout = errors.New("API request timeout")

// ClientConfig holds api-sports client configuration
type ClientConfig struct {
	BaseURL    string        // e.g., "https://v3.football.api-sports.io"
	APIKey     string        // Sent as x-apisports-key
	Timeout    time.Duration // Per request, e.g., 10 * time.Second
	MaxMatches int           // Upcoming fixtures to evaluate, e.g., 5
	Thresholds models.PredictionThresholds
}

// Client builds match predictions from the api-sports football API
type Client struct {
	httpClient *http.Client
	config     ClientConfig
	now        func() time.Time
	logger     zerolog.Logger
}

// NewClient creates a new football API client
func NewClient(config ClientConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		config:     config,
		now:        time.Now,
		logger:     logger.With().Str("component", "football_client").Logger(),
	}
}

// GetTodayPredictions evaluates the next upcoming fixtures of today and tomorrow
func (c *Client) GetTodayPredictions(ctx context.Context) ([]models.MatchPrediction, error) {
	now := c.now().UTC()
	today := now.Format(time.DateOnly)
	tomorrow := now.Add(24 * time.Hour).Format(time.DateOnly)

	var fixtures []Fixture
	for _, day := range []string{today, tomorrow} {
		dayFixtures, err := c.getFixtures(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to get fixtures for %s: %w", day, err)
		}
		fixtures = append(fixtures, dayFixtures...)
	}

	upcoming := upcomingFixtures(fixtures, now, c.config.MaxMatches)

	c.logger.Info().
		Int("total_fixtures", len(fixtures)).
		Int("upcoming_fixtures", len(upcoming)).
		Msg("fetched fixtures")

	predictions := make([]models.MatchPrediction, 0, len(upcoming))
	for _, fixture := range upcoming {
		pred, err := c.predict(ctx, fixture, now)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Int64("fixture_id", fixture.Fixture.ID).
				Str("home", fixture.Teams.Home.Name).
				Str("away", fixture.Teams.Away.Name).
				Msg("skipping fixture")
			continue
		}
		predictions = append(predictions, pred)
	}

	return predictions, nil
}

// upcomingFixtures keeps fixtures kicking off after now, earliest first, capped at limit
func upcomingFixtures(fixtures []Fixture, now time.Time, limit int) []Fixture {
	upcoming := make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Fixture.Date.After(now) {
			upcoming = append(upcoming, f)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Fixture.Date.Before(upcoming[j].Fixture.Date)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// predict combines both teams' statistics into goal and result predictions
func (c *Client) predict(ctx context.Context, fixture Fixture, now time.Time) (models.MatchPrediction, error) {
	season := fixture.League.Season
	if season == 0 {
		season = now.Year()
	}

	home, err := c.getTeamStatistics(ctx, fixture.Teams.Home.ID, fixture.League.ID, season)
	if err != nil {
		return models.MatchPrediction{}, fmt.Errorf("home statistics: %w", err)
	}
	away, err := c.getTeamStatistics(ctx, fixture.Teams.Away.ID, fixture.League.ID, season)
	if err != nil {
		return models.MatchPrediction{}, fmt.Errorf("away statistics: %w", err)
	}

	avgGoals := home.Goals.For.Average.Total.Add(away.Goals.For.Average.Total)
	over25Pct := int(home.Over25Pct().Add(away.Over25Pct()).
		Div(decimal.NewFromInt(2)).
		Round(0).
		IntPart())

	avg := avgGoals.InexactFloat64()

	return models.MatchPrediction{
		FixtureID:        fixture.Fixture.ID,
		HomeTeam:         fixture.Teams.Home.Name,
		AwayTeam:         fixture.Teams.Away.Name,
		League:           fixture.League.Name,
		Kickoff:          fixture.Fixture.Date,
		AvgGoals:         avg,
		Over25Pct:        over25Pct,
		LikelyOver25:     c.config.Thresholds.Qualifies(avg, over25Pct),
		ResultPrediction: predictResult(home, away, fixture.Teams.Home.ID, fixture.Teams.Away.ID),
	}, nil
}

// getFixtures calls GET /fixtures?date=
func (c *Client) getFixtures(ctx context.Context, day string) ([]Fixture, error) {
	var env envelope[[]Fixture]
	if err := c.get(ctx, "/fixtures", url.Values{"date": {day}}, &env); err != nil {
		return nil, err
	}
	return env.Response, nil
}

// getTeamStatistics calls GET /teams/statistics
func (c *Client) getTeamStatistics(ctx context.Context, teamID, leagueID int64, season int) (*TeamStatistics, error) {
	query := url.Values{
		"team":   {strconv.FormatInt(teamID, 10)},
		"league": {strconv.FormatInt(leagueID, 10)},
		"season": {strconv.Itoa(season)},
	}

	var env envelope[TeamStatistics]
	if err := c.get(ctx, "/teams/statistics", query, &env); err != nil {
		return nil, err
	}
	return &env.Response, nil
}

// get performs one authenticated request and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	reqURL := c.config.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().
		Str("path", path).
		Str("query", query.Encode()).
		Msg("API request complete")

	return nil
}
