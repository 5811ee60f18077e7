package main

import (
	"errors"

	"pet-care/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded PostgreSQL schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}
		if cfg.DBDSN == "" {
			return errors.New("migrate requires DB_DSN")
		}
		log := newLogger(cfg)
		defer syncLogger(log)

		db, err := openPostgres(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		log.Info("schema applied", nil)
		return nil
	},
}
