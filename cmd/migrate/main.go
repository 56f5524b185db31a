// Command migrate applies the schema migrations in lexical order, recording
// applied files in schema_migrations.
package main

import (
	"context"
	"embed"
	"sort"

	"github.com/joho/godotenv"

	"server/internal/infra"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `create table if not exists schema_migrations (name text primary key, applied_at timestamptz not null default now())`); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure migrations table")
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read migrations")
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		if err := pool.QueryRow(ctx, `select exists (select 1 from schema_migrations where name = $1)`, name).Scan(&applied); err != nil {
			logger.Fatal().Err(err).Str("migration", name).Msg("failed to check migration")
		}
		if applied {
			logger.Debug().Str("migration", name).Msg("already applied")
			continue
		}

		sql, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			logger.Fatal().Err(err).Str("migration", name).Msg("failed to read migration")
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to begin transaction")
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			logger.Fatal().Err(err).Str("migration", name).Msg("migration failed")
		}
		if _, err := tx.Exec(ctx, `insert into schema_migrations (name) values ($1)`, name); err != nil {
			_ = tx.Rollback(ctx)
			logger.Fatal().Err(err).Str("migration", name).Msg("failed to record migration")
		}
		if err := tx.Commit(ctx); err != nil {
			logger.Fatal().Err(err).Str("migration", name).Msg("failed to commit migration")
		}
		logger.Info().Str("migration", name).Msg("applied")
	}
}
