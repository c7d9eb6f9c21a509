package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tournament groups the agents and matches of one tournament run.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	TournamentID   int64     `bun:"tournament_id,pk,autoincrement" json:"tournamentID"`
	TournamentTime time.Time `bun:"tournament_time,notnull" json:"tournamentTime"`

	Agents  []*Agent `bun:"rel:has-many,join:tournament_id=tournament_id" json:"-"`
	Matches []*Match `bun:"rel:has-many,join:tournament_id=tournament_id" json:"-"`
}
