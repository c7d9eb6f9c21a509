package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/battleground/models"
)

const batchSize = 500

type tableCount struct {
	table string
	rows  int
}

// migrateAll copies the five runner tables in foreign-key order. Rows whose
// primary key already exists are skipped, so re-runs only add new results.
func migrateAll(ctx context.Context, src *sql.DB, dst bun.IDB) ([]tableCount, error) {
	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"teams", func() (int, error) {
			return copyRows(ctx, src, dst, "SELECT team_id, team_name FROM team", scanTeam)
		}},
		{"tournaments", func() (int, error) {
			return copyRows(ctx, src, dst, "SELECT tournament_id, tournament_time FROM tournament", scanTournament)
		}},
		{"agents", func() (int, error) {
			return copyRows(ctx, src, dst,
				"SELECT agent_id, agent_name, agent_type, team_id, tournament_id FROM agent", scanAgent)
		}},
		{"matches", func() (int, error) {
			return copyRows(ctx, src, dst,
				`SELECT match_id, match_time, tournament_id, pelican_agent_id, panther_agent_id,
				        logfile_url, game_config, winning_agent_id
				 FROM `+"`match`", scanMatch)
		}},
		{"games", func() (int, error) {
			return copyRows(ctx, src, dst,
				`SELECT game_id, game_time, match_id, video_url, num_turns, result_code, winner
				 FROM game`, scanGame)
		}},
	}

	var counts []tableCount
	for _, s := range steps {
		n, err := s.fn()
		counts = append(counts, tableCount{s.name, n})
		if err != nil {
			return counts, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return counts, nil
}

// --- helpers ---

func nullStr(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

func nullID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

// configJSON keeps game configs that are already JSON and encodes anything
// else as a JSON string.
func configJSON(n sql.NullString) (json.RawMessage, error) {
	if !n.Valid || n.String == "" {
		return nil, nil
	}
	if json.Valid([]byte(n.String)) {
		return json.RawMessage(n.String), nil
	}
	return json.Marshal(n.String)
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, db bun.IDB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

func copyRows[T any](ctx context.Context, src *sql.DB, dst bun.IDB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := src.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []T
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, dst, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, dst, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// --- per-table scanners ---

func scanTeam(rows *sql.Rows) (models.Team, error) {
	var r models.Team
	err := rows.Scan(&r.TeamID, &r.TeamName)
	return r, err
}

func scanTournament(rows *sql.Rows) (models.Tournament, error) {
	var r models.Tournament
	err := rows.Scan(&r.TournamentID, &r.TournamentTime)
	return r, err
}

func scanAgent(rows *sql.Rows) (models.Agent, error) {
	var r models.Agent
	var typ string
	if err := rows.Scan(&r.AgentID, &r.AgentName, &typ, &r.TeamID, &r.TournamentID); err != nil {
		return r, err
	}
	r.AgentType = models.AgentType(typ)
	if !r.AgentType.Valid() {
		return r, fmt.Errorf("agent %d: unknown agent_type %q", r.AgentID, typ)
	}
	return r, nil
}

func scanMatch(rows *sql.Rows) (models.Match, error) {
	var (
		r       models.Match
		logfile sql.NullString
		cfg     sql.NullString
		winner  sql.NullInt64
	)
	err := rows.Scan(&r.MatchID, &r.MatchTime, &r.TournamentID, &r.PelicanAgentID, &r.PantherAgentID,
		&logfile, &cfg, &winner)
	if err != nil {
		return r, err
	}
	r.LogfileURL = nullStr(logfile)
	r.WinningAgentID = nullID(winner)
	if r.GameConfig, err = configJSON(cfg); err != nil {
		return r, fmt.Errorf("match %d: game_config: %w", r.MatchID, err)
	}
	return r, nil
}

func scanGame(rows *sql.Rows) (models.Game, error) {
	var (
		r      models.Game
		video  sql.NullString
		turns  sql.NullInt64
		code   sql.NullString
		winner sql.NullString
	)
	if err := rows.Scan(&r.GameID, &r.GameTime, &r.MatchID, &video, &turns, &code, &winner); err != nil {
		return r, err
	}
	r.VideoURL = nullStr(video)
	r.NumTurns = int(turns.Int64)
	r.ResultCode = nullStr(code)
	r.Winner = nullStr(winner)
	return r, nil
}

// resetSequences moves each serial past the imported keys.
func resetSequences(ctx context.Context, db bun.IDB) {
	if db.Dialect().Name() != dialect.PG {
		return
	}
	seqs := []struct{ seq, table, col string }{
		{"teams_team_id_seq", "teams", "team_id"},
		{"tournaments_tournament_id_seq", "tournaments", "tournament_id"},
		{"agents_agent_id_seq", "agents", "agent_id"},
		{"matches_match_id_seq", "matches", "match_id"},
		{"games_game_id_seq", "games", "game_id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := db.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
