package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Match is a head-to-head pairing of one pelican and one panther agent.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	MatchID        int64           `bun:"match_id,pk,autoincrement" json:"matchID"`
	MatchTime      time.Time       `bun:"match_time,notnull" json:"matchTime"`
	TournamentID   int64           `bun:"tournament_id,notnull" json:"tournamentID"`
	PelicanAgentID int64           `bun:"pelican_agent_id,notnull" json:"pelicanAgentID"`
	PantherAgentID int64           `bun:"panther_agent_id,notnull" json:"pantherAgentID"`
	LogfileURL     string          `bun:"logfile_url" json:"logfileURL"`
	GameConfig     json.RawMessage `bun:"game_config,type:jsonb" json:"gameConfig"`
	WinningAgentID *int64          `bun:"winning_agent_id" json:"winningAgentID,omitempty"`

	Tournament   *Tournament `bun:"rel:belongs-to,join:tournament_id=tournament_id" json:"-"`
	PelicanAgent *Agent      `bun:"rel:belongs-to,join:pelican_agent_id=agent_id" json:"-"`
	PantherAgent *Agent      `bun:"rel:belongs-to,join:panther_agent_id=agent_id" json:"-"`
	WinningAgent *Agent      `bun:"rel:belongs-to,join:winning_agent_id=agent_id" json:"-"`
	Games        []*Game     `bun:"rel:has-many,join:match_id=match_id" json:"-"`
}

// Agent returns the agent playing the given side, or nil if it was not loaded.
func (m *Match) Agent(side AgentType) *Agent {
	switch side {
	case Pelican:
		return m.PelicanAgent
	case Panther:
		return m.PantherAgent
	}
	return nil
}

// Score counts the games of m won by the given side. A game counts for a
// side when its winner is either the side name or the name of the agent
// playing that side. Games must be loaded.
func (m *Match) Score(side AgentType) int {
	name := ""
	if a := m.Agent(side); a != nil {
		name = a.AgentName
	}

	score := 0
	for _, g := range m.Games {
		if g.Winner == string(side) || (name != "" && g.Winner == name) {
			score++
		}
	}
	return score
}
