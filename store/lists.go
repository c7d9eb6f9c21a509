package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/battleground/models"
)

// AgentFilter narrows ListAgents. Nil fields do not filter; set fields are
// combined with AND.
type AgentFilter struct {
	TournamentID *int64
	AgentType    *models.AgentType
	Team         *string
}

// MatchFilter narrows ListMatches.
type MatchFilter struct {
	TournamentID *int64
}

// TournamentSummary is one entry of the tournament list.
type TournamentSummary struct {
	TournamentID   int64  `json:"tournament_id"`
	TournamentTime string `json:"tournament_time"`
}

// MatchSummary is one entry of the match list.
type MatchSummary struct {
	MatchID   int64  `json:"match_id"`
	MatchTime string `json:"match_time"`
	Pelican   string `json:"pelican"`
	Panther   string `json:"panther"`
}

// ListTeams returns the name of every team.
func (s *Store) ListTeams(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.NewSelect().
		Model((*models.Team)(nil)).
		Column("tm.team_name").
		OrderExpr("tm.team_id ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return names, nil
}

// ListAgents returns the names of the agents matching every set filter.
func (s *Store) ListAgents(ctx context.Context, f AgentFilter) ([]string, error) {
	q := s.db.NewSelect().
		Model((*models.Agent)(nil)).
		Column("a.agent_name").
		OrderExpr("a.agent_id ASC")
	applyAgentFilter(q, f)

	names := []string{}
	if err := q.Scan(ctx, &names); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return names, nil
}

func applyAgentFilter(q *bun.SelectQuery, f AgentFilter) {
	if f.TournamentID != nil {
		q.Where("a.tournament_id = ?", *f.TournamentID)
	}
	if f.AgentType != nil {
		q.Where("a.agent_type = ?", *f.AgentType)
	}
	if f.Team != nil {
		q.Join("INNER JOIN teams AS tm ON tm.team_id = a.team_id").
			Where("tm.team_name = ?", *f.Team)
	}
}

// ListTournaments returns every tournament with its start time.
func (s *Store) ListTournaments(ctx context.Context) ([]TournamentSummary, error) {
	var tournaments []models.Tournament
	err := s.db.NewSelect().
		Model(&tournaments).
		OrderExpr("t.tournament_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	result := make([]TournamentSummary, len(tournaments))
	for i, t := range tournaments {
		result[i] = TournamentSummary{
			TournamentID:   t.TournamentID,
			TournamentTime: formatTime(t.TournamentTime),
		}
	}
	return result, nil
}

// ListMatches returns the matches selected by f together with the names of
// both agents.
func (s *Store) ListMatches(ctx context.Context, f MatchFilter) ([]MatchSummary, error) {
	var matches []models.Match
	q := s.db.NewSelect().
		Model(&matches).
		Relation("PelicanAgent").
		Relation("PantherAgent").
		OrderExpr("m.match_id ASC")
	if f.TournamentID != nil {
		q.Where("m.tournament_id = ?", *f.TournamentID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	result := make([]MatchSummary, len(matches))
	for i, m := range matches {
		result[i] = MatchSummary{
			MatchID:   m.MatchID,
			MatchTime: formatTime(m.MatchTime),
			Pelican:   agentName(m.PelicanAgent),
			Panther:   agentName(m.PantherAgent),
		}
	}
	return result, nil
}
