package cmd

import (
	"os"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/MyelinBots/knightrun-go/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "knightrun",
	Short:         "Knight Run backend API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.json", "path to an optional JSON config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().
			Error().Err(err).Msg("knightrun exited with error")
		os.Exit(1)
	}
}

func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.AppConfig), nil
}
