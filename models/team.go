package models

import "github.com/uptrace/bun"

// Team owns one or more agents entered into tournaments.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`

	TeamID   int64  `bun:"team_id,pk,autoincrement" json:"teamID"`
	TeamName string `bun:"team_name,notnull,unique" json:"teamName"`

	Agents []*Agent `bun:"rel:has-many,join:team_id=team_id" json:"-"`
}
