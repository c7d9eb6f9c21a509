package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/padraicbc/battleground/db/dbtest"
	"github.com/padraicbc/battleground/models"
	"github.com/padraicbc/battleground/store"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	db     *bun.DB
	red    *models.Team
	blue   *models.Team
	t1, t2 *models.Tournament
	alphaP *models.Agent
	betaN  *models.Agent
	gammaP *models.Agent
	deltaN *models.Agent
	otherP *models.Agent
	match  *models.Match
	second *models.Match
	game   *models.Game
	game2  *models.Game
}

// seed builds two tournaments. Tournament 1 has two teams, four agents and
// two matches; tournament 2 has a single agent and nothing else.
func seed(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: dbtest.New(t)}

	f.red = &models.Team{TeamName: "red"}
	f.blue = &models.Team{TeamName: "blue"}
	f.t1 = &models.Tournament{TournamentTime: time.Date(2023, 1, 1, 10, 0, 0, 500_000_000, time.UTC)}
	f.t2 = &models.Tournament{TournamentTime: time.Date(2023, 2, 1, 9, 30, 15, 0, time.UTC)}
	dbtest.Insert(t, f.db, f.red, f.blue, f.t1, f.t2)

	agent := func(name string, typ models.AgentType, team *models.Team, tour *models.Tournament) *models.Agent {
		return &models.Agent{AgentName: name, AgentType: typ, TeamID: team.TeamID, TournamentID: tour.TournamentID}
	}
	f.alphaP = agent("AlphaP", models.Pelican, f.red, f.t1)
	f.betaN = agent("BetaN", models.Panther, f.blue, f.t1)
	f.gammaP = agent("GammaP", models.Pelican, f.blue, f.t1)
	f.deltaN = agent("DeltaN", models.Panther, f.red, f.t1)
	f.otherP = agent("OtherP", models.Pelican, f.red, f.t2)
	dbtest.Insert(t, f.db, f.alphaP, f.betaN, f.gammaP, f.deltaN, f.otherP)

	f.match = &models.Match{
		MatchTime:      time.Date(2023, 1, 1, 11, 0, 0, 123_456_000, time.UTC),
		TournamentID:   f.t1.TournamentID,
		PelicanAgentID: f.alphaP.AgentID,
		PantherAgentID: f.betaN.AgentID,
		LogfileURL:     "https://logs.example.com/5.log",
		GameConfig:     json.RawMessage(`{"maxturns":50}`),
		WinningAgentID: ptr(f.alphaP.AgentID),
	}
	f.second = &models.Match{
		MatchTime:      time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
		TournamentID:   f.t1.TournamentID,
		PelicanAgentID: f.gammaP.AgentID,
		PantherAgentID: f.deltaN.AgentID,
	}
	dbtest.Insert(t, f.db, f.match, f.second)

	f.game = &models.Game{
		GameTime:   time.Date(2023, 1, 1, 11, 5, 0, 999_000_000, time.UTC),
		MatchID:    f.match.MatchID,
		VideoURL:   "https://videos.example.com/9.mp4",
		NumTurns:   42,
		ResultCode: "ESCAPE",
		Winner:     "AlphaP",
	}
	f.game2 = &models.Game{
		GameTime:   time.Date(2023, 1, 1, 11, 10, 0, 0, time.UTC),
		MatchID:    f.match.MatchID,
		NumTurns:   17,
		ResultCode: "PELICANWIN",
		Winner:     "pelican",
	}
	dbtest.Insert(t, f.db, f.game, f.game2)

	return f
}

func TestEmptyStore(t *testing.T) {
	s := store.New(dbtest.New(t))
	ctx := context.Background()

	teams, err := s.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, teams)

	matches, err := s.ListMatches(ctx, store.MatchFilter{})
	require.NoError(t, err)
	assert.Empty(t, matches)

	tournaments, err := s.ListTournaments(ctx)
	require.NoError(t, err)
	assert.Empty(t, tournaments)

	_, err = s.GetTournament(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetMatch(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetGame(ctx, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetMatchID(ctx, 1, "x", "y")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListTeams(t *testing.T) {
	f := seed(t)

	teams, err := store.New(f.db).ListTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "blue"}, teams)
}

func TestListAgents(t *testing.T) {
	f := seed(t)
	s := store.New(f.db)

	tests := []struct {
		name   string
		filter store.AgentFilter
		want   []string
	}{
		{"no filter", store.AgentFilter{}, []string{"AlphaP", "BetaN", "GammaP", "DeltaN", "OtherP"}},
		{"tournament", store.AgentFilter{TournamentID: ptr(f.t2.TournamentID)}, []string{"OtherP"}},
		{"type", store.AgentFilter{AgentType: ptr(models.Panther)}, []string{"BetaN", "DeltaN"}},
		{"team", store.AgentFilter{Team: ptr("blue")}, []string{"BetaN", "GammaP"}},
		{
			"all three",
			store.AgentFilter{
				TournamentID: ptr(f.t1.TournamentID),
				AgentType:    ptr(models.Pelican),
				Team:         ptr("red"),
			},
			[]string{"AlphaP"},
		},
		{"unknown team", store.AgentFilter{Team: ptr("green")}, []string{}},
		{"unknown type", store.AgentFilter{AgentType: ptr(models.AgentType("walrus"))}, []string{}},
		{"unknown tournament", store.AgentFilter{TournamentID: ptr(int64(999))}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListAgents(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListTournamentsTruncatesTime(t *testing.T) {
	f := seed(t)

	got, err := store.New(f.db).ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.TournamentSummary{
		{TournamentID: f.t1.TournamentID, TournamentTime: "2023-01-01T10:00:00"},
		{TournamentID: f.t2.TournamentID, TournamentTime: "2023-02-01T09:30:15"},
	}, got)
}

func TestListMatches(t *testing.T) {
	f := seed(t)
	s := store.New(f.db)
	ctx := context.Background()

	all, err := s.ListMatches(ctx, store.MatchFilter{})
	require.NoError(t, err)
	assert.Equal(t, []store.MatchSummary{
		{MatchID: f.match.MatchID, MatchTime: "2023-01-01T11:00:00", Pelican: "AlphaP", Panther: "BetaN"},
		{MatchID: f.second.MatchID, MatchTime: "2023-01-01T12:00:00", Pelican: "GammaP", Panther: "DeltaN"},
	}, all)

	none, err := s.ListMatches(ctx, store.MatchFilter{TournamentID: ptr(f.t2.TournamentID)})
	require.NoError(t, err)
	assert.Empty(t, none)

	one, err := s.ListMatches(ctx, store.MatchFilter{TournamentID: ptr(f.t1.TournamentID)})
	require.NoError(t, err)
	assert.Len(t, one, 2)
}

func TestGetTournament(t *testing.T) {
	f := seed(t)
	s := store.New(f.db)

	got, err := s.GetTournament(context.Background(), f.t1.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, &store.TournamentDetail{
		TournamentID:   f.t1.TournamentID,
		TournamentTime: "2023-01-01T10:00:00",
		PelicanAgents:  []string{"AlphaP", "GammaP"},
		PantherAgents:  []string{"BetaN", "DeltaN"},
		Matches:        []int64{f.match.MatchID, f.second.MatchID},
	}, got)

	// The two sides partition the tournament's agents.
	agents, err := s.ListAgents(context.Background(), store.AgentFilter{TournamentID: ptr(f.t1.TournamentID)})
	require.NoError(t, err)
	assert.ElementsMatch(t, agents, append(append([]string{}, got.PelicanAgents...), got.PantherAgents...))

	empty, err := s.GetTournament(context.Background(), f.t2.TournamentID)
	require.NoError(t, err)
	assert.Equal(t, []string{"OtherP"}, empty.PelicanAgents)
	assert.Equal(t, []string{}, empty.PantherAgents)
	assert.Equal(t, []int64{}, empty.Matches)
}

func TestGetMatchIDThenGetMatch(t *testing.T) {
	f := seed(t)
	s := store.New(f.db)
	ctx := context.Background()

	ref, err := s.GetMatchID(ctx, f.t1.TournamentID, "BetaN", "AlphaP")
	require.NoError(t, err)
	assert.Equal(t, f.match.MatchID, ref.MatchID)

	m, err := s.GetMatch(ctx, ref.MatchID)
	require.NoError(t, err)
	assert.Equal(t, "AlphaP", m.Pelican)
	assert.Equal(t, "BetaN", m.Panther)

	// Sides are not interchangeable.
	_, err = s.GetMatchID(ctx, f.t1.TournamentID, "AlphaP", "BetaN")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Wrong tournament.
	_, err = s.GetMatchID(ctx, f.t2.TournamentID, "BetaN", "AlphaP")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetMatch(t *testing.T) {
	f := seed(t)

	got, err := store.New(f.db).GetMatch(context.Background(), f.match.MatchID)
	require.NoError(t, err)

	assert.Equal(t, f.match.MatchID, got.MatchID)
	assert.Equal(t, "2023-01-01T11:00:00", got.MatchTime)
	assert.Equal(t, "https://logs.example.com/5.log", got.Logfile)
	assert.JSONEq(t, `{"maxturns":50}`, string(got.Config))
	assert.Equal(t, 2, got.PelicanScore)
	assert.Equal(t, 0, got.PantherScore)
	require.NotNil(t, got.Winner)
	assert.Equal(t, "AlphaP", *got.Winner)
	assert.Equal(t, []int64{f.game.GameID, f.game2.GameID}, got.Games)
}

func TestGetMatchWithoutWinnerOrGames(t *testing.T) {
	f := seed(t)

	got, err := store.New(f.db).GetMatch(context.Background(), f.second.MatchID)
	require.NoError(t, err)
	assert.Nil(t, got.Winner)
	assert.Equal(t, []int64{}, got.Games)
	assert.Equal(t, 0, got.PelicanScore)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"winner":null`)
	assert.Contains(t, string(b), `"games":[]`)
}

func TestGetMatchUsesScorer(t *testing.T) {
	f := seed(t)
	scorer := store.ScorerFunc(func(m *models.Match, side models.AgentType) int {
		if side == models.Panther {
			return 7
		}
		return len(m.Games)
	})

	got, err := store.New(f.db, store.WithScorer(scorer)).GetMatch(context.Background(), f.match.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.PantherScore)
	assert.Equal(t, 2, got.PelicanScore)
}

func TestGetGameDenormalizesAgents(t *testing.T) {
	f := seed(t)

	got, err := store.New(f.db).GetGame(context.Background(), f.game.GameID)
	require.NoError(t, err)
	assert.Equal(t, &store.GameDetail{
		GameID:     f.game.GameID,
		GameTime:   "2023-01-01T11:05:00",
		Pelican:    "AlphaP",
		Panther:    "BetaN",
		Video:      "https://videos.example.com/9.mp4",
		NumTurns:   42,
		ResultCode: "ESCAPE",
		Winner:     "AlphaP",
	}, got)
}
