package main

import (
	"github.com/spf13/cobra"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/mysql"
)

func newMigrateCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := mysql.NewMysqlConnection(mysql.DBConnOptions{
				Host:     state.cfg.DB.Host,
				Port:     state.cfg.DB.Port,
				Username: state.cfg.DB.Username,
				Password: state.cfg.DB.Password,
				Database: state.cfg.DB.Database,
			})
			if err != nil {
				return err
			}

			if err := mysql.GormMigrations(db); err != nil {
				return err
			}

			logger.Info("Database schema is up to date")
			return nil
		},
	}
}
