package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/brainbox/internal/config"
	"github.com/templui/brainbox/internal/db"
	"github.com/templui/brainbox/internal/logger"
)

// openDatabase loads the app config (including .env) and connects to its database.
func openDatabase() (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(true, "")

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, database, nil
}
