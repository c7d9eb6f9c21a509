package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Game is a single played instance within a match.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	GameID     int64     `bun:"game_id,pk,autoincrement" json:"gameID"`
	GameTime   time.Time `bun:"game_time,notnull" json:"gameTime"`
	MatchID    int64     `bun:"match_id,notnull" json:"matchID"`
	VideoURL   string    `bun:"video_url" json:"videoURL"`
	NumTurns   int       `bun:"num_turns" json:"numTurns"`
	ResultCode string    `bun:"result_code" json:"resultCode"`
	Winner     string    `bun:"winner" json:"winner"`

	Match *Match `bun:"rel:belongs-to,join:match_id=match_id" json:"-"`
}
