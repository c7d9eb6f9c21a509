package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/battleground/config"
	"github.com/padraicbc/battleground/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// Tables lists every model in foreign-key dependency order.
func Tables() []interface{} {
	return []interface{}{
		(*models.Team)(nil),
		(*models.Tournament)(nil),
		(*models.Agent)(nil),
		(*models.Match)(nil),
		(*models.Game)(nil),
	}
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db bun.IDB) error {
	for _, model := range Tables() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	// One match per pairing within a tournament; match_id lookups rely on it.
	_, err := db.NewCreateIndex().
		Model((*models.Match)(nil)).
		Index("matches_pairing_idx").
		Unique().
		IfNotExists().
		Column("tournament_id", "pelican_agent_id", "panther_agent_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("creating matches_pairing_idx: %w", err)
	}

	indexes := []struct {
		model  interface{}
		name   string
		column string
	}{
		{(*models.Agent)(nil), "agents_tournament_idx", "tournament_id"},
		{(*models.Match)(nil), "matches_tournament_idx", "tournament_id"},
		{(*models.Game)(nil), "games_match_idx", "match_id"},
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).IfNotExists().Column(idx.column).Exec(ctx); err != nil {
			return fmt.Errorf("creating %s: %w", idx.name, err)
		}
	}

	if db.Dialect().Name() != dialect.PG {
		return nil
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'matches_distinct_agents') THEN ALTER TABLE matches ADD CONSTRAINT matches_distinct_agents CHECK (pelican_agent_id <> panther_agent_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'agents_type_check') THEN ALTER TABLE agents ADD CONSTRAINT agents_type_check CHECK (agent_type IN ('pelican', 'panther')); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
