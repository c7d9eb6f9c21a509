package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/battleground/models"
)

// TournamentDetail is the full view of one tournament.
type TournamentDetail struct {
	TournamentID   int64    `json:"tournament_id"`
	TournamentTime string   `json:"tournament_time"`
	PelicanAgents  []string `json:"pelican_agents"`
	PantherAgents  []string `json:"panther_agents"`
	Matches        []int64  `json:"matches"`
}

// MatchRef identifies a match found by its pairing.
type MatchRef struct {
	MatchID int64 `json:"match_id"`
}

// MatchDetail is the full view of one match.
type MatchDetail struct {
	MatchID      int64           `json:"match_id"`
	MatchTime    string          `json:"match_time"`
	Pelican      string          `json:"pelican"`
	Panther      string          `json:"panther"`
	Logfile      string          `json:"logfile"`
	Config       json.RawMessage `json:"config"`
	PantherScore int             `json:"panther_score"`
	PelicanScore int             `json:"pelican_score"`
	Winner       *string         `json:"winner"`
	Games        []int64         `json:"games"`
}

// GameDetail is the full view of one game, with the agent names of its match.
type GameDetail struct {
	GameID     int64  `json:"game_id"`
	GameTime   string `json:"game_time"`
	Pelican    string `json:"pelican"`
	Panther    string `json:"panther"`
	Video      string `json:"video"`
	NumTurns   int    `json:"num_turns"`
	ResultCode string `json:"result_code"`
	Winner     string `json:"winner"`
}

// GetTournament returns the tournament with the given id, its agents split
// by side and its match ids. It returns ErrNotFound if there is none.
func (s *Store) GetTournament(ctx context.Context, id int64) (*TournamentDetail, error) {
	t := &models.Tournament{}
	err := s.db.NewSelect().
		Model(t).
		Relation("Agents", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("a.agent_id ASC")
		}).
		Relation("Matches", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("m.match_id ASC")
		}).
		Where("t.tournament_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "tournament", id)
	}

	d := &TournamentDetail{
		TournamentID:   t.TournamentID,
		TournamentTime: formatTime(t.TournamentTime),
		PelicanAgents:  []string{},
		PantherAgents:  []string{},
		Matches:        make([]int64, len(t.Matches)),
	}
	for _, a := range t.Agents {
		switch a.AgentType {
		case models.Pelican:
			d.PelicanAgents = append(d.PelicanAgents, a.AgentName)
		case models.Panther:
			d.PantherAgents = append(d.PantherAgents, a.AgentName)
		}
	}
	for i, m := range t.Matches {
		d.Matches[i] = m.MatchID
	}
	return d, nil
}

// GetMatchID finds the match of a tournament between the named panther and
// pelican agents. When several rows match, the lowest match id wins.
func (s *Store) GetMatchID(ctx context.Context, tournamentID int64, panther, pelican string) (*MatchRef, error) {
	m := &models.Match{}
	err := s.db.NewSelect().
		Model(m).
		Column("m.match_id").
		Join("INNER JOIN agents AS pel ON pel.agent_id = m.pelican_agent_id").
		Join("INNER JOIN agents AS pan ON pan.agent_id = m.panther_agent_id").
		Where("m.tournament_id = ?", tournamentID).
		Where("pel.agent_name = ?", pelican).
		Where("pan.agent_name = ?", panther).
		OrderExpr("m.match_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "match in tournament", tournamentID)
	}
	return &MatchRef{MatchID: m.MatchID}, nil
}

// GetMatch returns the match with the given id, its per-side scores and its
// game ids. It returns ErrNotFound if there is none.
func (s *Store) GetMatch(ctx context.Context, id int64) (*MatchDetail, error) {
	m := &models.Match{}
	err := s.db.NewSelect().
		Model(m).
		Relation("PelicanAgent").
		Relation("PantherAgent").
		Relation("Games", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("g.game_id ASC")
		}).
		Where("m.match_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "match", id)
	}

	winner, err := s.winnerName(ctx, m)
	if err != nil {
		return nil, err
	}

	d := &MatchDetail{
		MatchID:      m.MatchID,
		MatchTime:    formatTime(m.MatchTime),
		Pelican:      agentName(m.PelicanAgent),
		Panther:      agentName(m.PantherAgent),
		Logfile:      m.LogfileURL,
		Config:       m.GameConfig,
		PantherScore: s.scorer.Score(m, models.Panther),
		PelicanScore: s.scorer.Score(m, models.Pelican),
		Winner:       winner,
		Games:        make([]int64, len(m.Games)),
	}
	for i, g := range m.Games {
		d.Games[i] = g.GameID
	}
	return d, nil
}

// winnerName resolves the winning agent's name, nil when the match has none.
// The winner is normally one of the two side agents already loaded.
func (s *Store) winnerName(ctx context.Context, m *models.Match) (*string, error) {
	if m.WinningAgentID == nil {
		return nil, nil
	}
	for _, a := range []*models.Agent{m.PelicanAgent, m.PantherAgent} {
		if a != nil && a.AgentID == *m.WinningAgentID {
			return &a.AgentName, nil
		}
	}

	var name string
	err := s.db.NewSelect().
		Model((*models.Agent)(nil)).
		Column("a.agent_name").
		Where("a.agent_id = ?", *m.WinningAgentID).
		Scan(ctx, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get winning agent %d: %w", *m.WinningAgentID, err)
	}
	return &name, nil
}

// GetGame returns the game with the given id together with the agent names
// of the match it belongs to. It returns ErrNotFound if there is none.
func (s *Store) GetGame(ctx context.Context, id int64) (*GameDetail, error) {
	g := &models.Game{}
	err := s.db.NewSelect().
		Model(g).
		Relation("Match").
		Relation("Match.PelicanAgent").
		Relation("Match.PantherAgent").
		Where("g.game_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "game", id)
	}

	d := &GameDetail{
		GameID:     g.GameID,
		GameTime:   formatTime(g.GameTime),
		Video:      g.VideoURL,
		NumTurns:   g.NumTurns,
		ResultCode: g.ResultCode,
		Winner:     g.Winner,
	}
	if g.Match != nil {
		d.Pelican = agentName(g.Match.PelicanAgent)
		d.Panther = agentName(g.Match.PantherAgent)
	}
	return d, nil
}
