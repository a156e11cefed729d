package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/config"
	appContext "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

const defaultConfigPath = "config.yaml"

// cliState is filled by the root command before any subcommand runs.
type cliState struct {
	configPath string
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	cmd := &cobra.Command{
		Use:   "scan-orchestrator",
		Short: "Schedules, tracks and streams port scan jobs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.load(cmd)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&state.configPath, "config", "c", defaultConfigPath, "service configuration file (overridden by CONFIG_PATH)")

	cmd.AddCommand(newServeCommand(state))
	cmd.AddCommand(newSweepCommand(state))
	cmd.AddCommand(newMigrateCommand(state))

	return cmd
}

// load reads the configuration and initializes the global logger.
func (s *cliState) load(cmd *cobra.Command) error {
	if v := os.Getenv("CONFIG_PATH"); len(v) > 0 && !cmd.Flags().Changed("config") {
		s.configPath = v
	}

	cfg, err := config.ReadConfig(s.configPath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", s.configPath, err)
	}
	s.cfg = cfg

	if err := logger.InitGlobalLogger(cfg.Logger); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	appContext.SetDefaultLogger(logger.GetGlobalLogger().CoreLogger.Logger)

	logger.InfoWithFields("Configuration loaded", map[string]interface{}{
		"config_path": s.configPath,
		"log_level":   cfg.Logger.Level,
		"log_output":  cfg.Logger.Output,
	})
	return nil
}
