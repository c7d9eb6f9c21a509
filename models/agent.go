package models

import "github.com/uptrace/bun"

// AgentType is the side an agent plays in a match.
type AgentType string

const (
	Pelican AgentType = "pelican"
	Panther AgentType = "panther"
)

// Valid reports whether t is one of the two known sides.
func (t AgentType) Valid() bool {
	return t == Pelican || t == Panther
}

// Agent is a single team entry for one side of one tournament.
type Agent struct {
	bun.BaseModel `bun:"table:agents,alias:a"`

	AgentID      int64     `bun:"agent_id,pk,autoincrement" json:"agentID"`
	AgentName    string    `bun:"agent_name,notnull" json:"agentName"`
	AgentType    AgentType `bun:"agent_type,notnull" json:"agentType"`
	TournamentID int64     `bun:"tournament_id,notnull" json:"tournamentID"`
	TeamID       int64     `bun:"team_id,notnull" json:"teamID"`

	Team       *Team       `bun:"rel:belongs-to,join:team_id=team_id" json:"-"`
	Tournament *Tournament `bun:"rel:belongs-to,join:tournament_id=tournament_id" json:"-"`
}
