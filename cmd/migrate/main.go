// cmd/migrate/main.go
// Imports tournament results from the tournament runner's MySQL database into
// the PostgreSQL database served by the API.
//
// Usage:
//
//	LEGACY_MYSQL_DSN="user:pass@tcp(host:3306)/battleground?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"github.com/padraicbc/battleground/config"
	bundb "github.com/padraicbc/battleground/db"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.LegacyMySQLDSN == "" {
		log.Fatal("LEGACY_MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/battleground?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.LegacyMySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	counts, err := migrateAll(ctx, myDB, pgDB)
	for _, c := range counts {
		log.Printf("%-12s  %d rows migrated", c.table, c.rows)
	}
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}
