package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/RomanSlack/Orchestrator-Arena/internal/db"
	"github.com/RomanSlack/Orchestrator-Arena/internal/dbconfig"
)

func setupDatabase() (*sql.DB, error) {
	config := dbconfig.NewConfigFromEnv()

	database, err := config.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.CreateSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Info().
		Str("host", config.Host).
		Int("port", config.Port).
		Str("database", config.Database).
		Msg("connected to database")
	return database, nil
}
