package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// NewDB opens the shared pool every repository receives; it is closed once on shutdown.
func NewDB(ctx context.Context, uri string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

func CloseDB(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close DB")
		return
	}
	log.Info().Msg("Database connection closed")
}
