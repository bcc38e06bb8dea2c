package football

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// fakeAPI serves canned api-sports responses
type fakeAPI struct {
	mu        sync.Mutex
	fixtures  map[string]string // date -> response array body
	stats     map[string]string // team id -> response object body
	failStats map[string]int    // team id -> status code
	apiKeys   []string
	delay     time.Duration
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.apiKeys = append(f.apiKeys, r.Header.Get("x-apisports-key"))
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	switch r.URL.Path {
	case "/fixtures":
		body, ok := f.fixtures[r.URL.Query().Get("date")]
		if !ok {
			body = "[]"
		}
		fmt.Fprintf(w, `{"response":%s}`, body)
	case "/teams/statistics":
		team := r.URL.Query().Get("team")
		if code, ok := f.failStats[team]; ok {
			w.WriteHeader(code)
			return
		}
		fmt.Fprintf(w, `{"response":%s}`, f.stats[team])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func fixtureJSON(id int64, date string, homeID int64, home string, awayID int64, away string) string {
	return fmt.Sprintf(`{
		"fixture":{"id":%d,"date":%q},
		"league":{"id":13,"name":"Copa Libertadores","season":2026},
		"teams":{"home":{"id":%d,"name":%q},"away":{"id":%d,"name":%q}}
	}`, id, date, homeID, home, awayID, away)
}

func statsJSON(avg string, over, under int) string {
	return fmt.Sprintf(`{"goals":{"for":{"average":{"home":"1.0","away":"1.0","total":%q},"under_over":{"2.5":{"over":%d,"under":%d}}}}}`, avg, over, under)
}

// testClientSetup is a helper struct to hold test dependencies
type testClientSetup struct {
	client *Client
	api    *fakeAPI
	server *httptest.Server
	ctx    context.Context
}

// setupTestClient creates a client against a fake API with a fixed clock
func setupTestClient(t *testing.T, api *fakeAPI) *testClientSetup {
	server := httptest.NewServer(api)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxMatches: 5,
		Thresholds: models.PredictionThresholds{MinAvgGoals: 2.5, MinOver25Pct: 10},
	}, server.Client(), zerolog.Nop())
	client.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	return &testClientSetup{client: client, api: api, server: server, ctx: context.Background()}
}

// cleanup cleans up test resources
func (s *testClientSetup) cleanup() {
	s.server.Close()
}

// TestGetTodayPredictions_Success tests filtering, ordering and computed fields
func TestGetTodayPredictions_Success(t *testing.T) {
	api := &fakeAPI{
		fixtures: map[string]string{
			"2026-10-18": "[" +
				fixtureJSON(1, "2026-10-18T10:00:00+00:00", 10, "Started FC", 11, "Past United") + "," +
				fixtureJSON(2, "2026-10-18T19:30:00+00:00", 20, "Colo Colo", 21, "Atlético Bucaramanga") + "," +
				fixtureJSON(3, "2026-10-18T17:00:00+00:00", 30, "Olimpia", 31, "San Antonio") +
				"]",
			"2026-10-19": "[" +
				fixtureJSON(4, "2026-10-19T17:00:00+00:00", 40, "Racing Club", 41, "Fortaleza") +
				"]",
		},
		stats: map[string]string{
			"20": statsJSON("1.8", 7, 3),
			"21": statsJSON("1.53", 6, 4),
			"30": statsJSON("2.1", 8, 2),
			"31": statsJSON("1.35", 6, 4),
			"40": statsJSON("1.2", 4, 6),
			"41": statsJSON("0.96", 3, 7),
		},
	}
	setup := setupTestClient(t, api)
	defer setup.cleanup()

	predictions, err := setup.client.GetTodayPredictions(setup.ctx)

	require.NoError(t, err)
	require.Len(t, predictions, 3)

	// Earliest kickoff first, started fixture dropped
	assert.Equal(t, "Olimpia", predictions[0].HomeTeam)
	assert.Equal(t, "Colo Colo", predictions[1].HomeTeam)
	assert.Equal(t, "Racing Club", predictions[2].HomeTeam)

	assert.InDelta(t, 3.45, predictions[0].AvgGoals, 1e-9)
	assert.Equal(t, 70, predictions[0].Over25Pct)
	assert.True(t, predictions[0].IsLikelyOver25())
	assert.Equal(t, "Copa Libertadores", predictions[0].League)
	assert.Equal(t, int64(3), predictions[0].FixtureID)

	assert.InDelta(t, 3.33, predictions[1].AvgGoals, 1e-9)
	assert.Equal(t, 65, predictions[1].Over25Pct)
	assert.True(t, predictions[1].IsLikelyOver25())

	assert.InDelta(t, 2.16, predictions[2].AvgGoals, 1e-9)
	assert.Equal(t, 35, predictions[2].Over25Pct)
	assert.False(t, predictions[2].IsLikelyOver25())

	for _, key := range api.apiKeys {
		assert.Equal(t, "test-key", key)
	}
}

// TestGetTodayPredictions_NoFixtures tests that an empty day yields an empty, non-nil slice
func TestGetTodayPredictions_NoFixtures(t *testing.T) {
	setup := setupTestClient(t, &fakeAPI{})
	defer setup.cleanup()

	predictions, err := setup.client.GetTodayPredictions(setup.ctx)

	require.NoError(t, err)
	assert.NotNil(t, predictions)
	assert.Empty(t, predictions)
}

// TestGetTodayPredictions_SkipsFailedStatistics tests that one failing team does not fail the run
func TestGetTodayPredictions_SkipsFailedStatistics(t *testing.T) {
	api := &fakeAPI{
		fixtures: map[string]string{
			"2026-10-18": "[" +
				fixtureJSON(2, "2026-10-18T19:30:00+00:00", 20, "Colo Colo", 21, "Atlético Bucaramanga") + "," +
				fixtureJSON(3, "2026-10-18T17:00:00+00:00", 30, "Olimpia", 31, "San Antonio") +
				"]",
		},
		stats: map[string]string{
			"20": statsJSON("1.8", 7, 3),
			"21": statsJSON("1.53", 6, 4),
			"30": statsJSON("2.1", 8, 2),
		},
		failStats: map[string]int{"31": http.StatusInternalServerError},
	}
	setup := setupTestClient(t, api)
	defer setup.cleanup()

	predictions, err := setup.client.GetTodayPredictions(setup.ctx)

	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "Colo Colo", predictions[0].HomeTeam)
}

// TestGetTodayPredictions_CapsMatches tests the max matches limit
func TestGetTodayPredictions_CapsMatches(t *testing.T) {
	api := &fakeAPI{fixtures: map[string]string{}, stats: map[string]string{}}
	body := "["
	for i := 0; i < 8; i++ {
		if i > 0 {
			body += ","
		}
		homeID, awayID := int64(100+2*i), int64(101+2*i)
		body += fixtureJSON(int64(i), fmt.Sprintf("2026-10-18T%02d:00:00+00:00", 13+i), homeID, fmt.Sprintf("Home %d", i), awayID, fmt.Sprintf("Away %d", i))
		api.stats[fmt.Sprint(homeID)] = statsJSON("1.5", 5, 5)
		api.stats[fmt.Sprint(awayID)] = statsJSON("1.5", 5, 5)
	}
	api.fixtures["2026-10-18"] = body + "]"

	setup := setupTestClient(t, api)
	defer setup.cleanup()

	predictions, err := setup.client.GetTodayPredictions(setup.ctx)

	require.NoError(t, err)
	require.Len(t, predictions, 5)
	assert.Equal(t, "Home 0", predictions[0].HomeTeam)
	assert.Equal(t, "Home 4", predictions[4].HomeTeam)
}

// TestGetTodayPredictions_FixturesError tests that a failing fixtures call fails the run
func TestGetTodayPredictions_FixturesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: time.Second}, server.Client(), zerolog.Nop())

	predictions, err := client.GetTodayPredictions(context.Background())

	assert.Error(t, err)
	assert.Nil(t, predictions)
	assert.Contains(t, err.Error(), "API error: 429")
}

// TestGetTodayPredictions_Timeout tests the per-request timeout
func TestGetTodayPredictions_Timeout(t *testing.T) {
	setup := setupTestClient(t, &fakeAPI{delay: 200 * time.Millisecond})
	defer setup.cleanup()
	setup.client.config.Timeout = 20 * time.Millisecond

	predictions, err := setup.client.GetTodayPredictions(setup.ctx)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Nil(t, predictions)
}

// TestGetTodayPredictions_MalformedBody tests decoding failures
func TestGetTodayPredictions_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL}, server.Client(), zerolog.Nop())

	_, err := client.GetTodayPredictions(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

// TestOver25Pct tests the over 2.5 share computation
func TestOver25Pct(t *testing.T) {
	tests := []struct {
		name     string
		line     map[string]UnderOver
		expected string
	}{
		{name: "Mostly over", line: map[string]UnderOver{"2.5": {Over: 7, Under: 3}}, expected: "70.00"},
		{name: "Thirds", line: map[string]UnderOver{"2.5": {Over: 1, Under: 2}}, expected: "33.33"},
		{name: "No matches played", line: map[string]UnderOver{"2.5": {}}, expected: "0.00"},
		{name: "Missing line", line: map[string]UnderOver{"1.5": {Over: 4, Under: 1}}, expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats TeamStatistics
			stats.Goals.For.UnderOver = tt.line

			assert.Equal(t, tt.expected, stats.Over25Pct().StringFixed(2))
		})
	}
}

// TestUpcomingFixtures tests filtering and sorting without network access
func TestUpcomingFixtures(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	mk := func(id int64, at time.Time) Fixture {
		var f Fixture
		f.Fixture.ID = id
		f.Fixture.Date = at
		return f
	}

	fixtures := []Fixture{
		mk(1, now.Add(3*time.Hour)),
		mk(2, now),
		mk(3, now.Add(-time.Hour)),
		mk(4, now.Add(time.Hour)),
	}

	upcoming := upcomingFixtures(fixtures, now, 0)

	require.Len(t, upcoming, 2)
	assert.Equal(t, int64(4), upcoming[0].Fixture.ID)
	assert.Equal(t, int64(1), upcoming[1].Fixture.ID)
}
