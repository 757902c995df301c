package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/MyelinBots/knightrun-go/internal/db"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
	"github.com/MyelinBots/knightrun-go/internal/server"
	"github.com/MyelinBots/knightrun-go/internal/services/account"
	"github.com/MyelinBots/knightrun-go/internal/services/events"
	"github.com/MyelinBots/knightrun-go/internal/services/stats"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().Msgf("starting with %s", cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewDatabase(cfg.DBConfig, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()

	migrator := db.NewMigrator(cfg.DBConfig.DSN(), log)
	if !cfg.DBConfig.SkipMigrate {
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := migrator.EnsureSchema(migrateCtx); err != nil {
			// registration retries the schema on demand
			log.Warn().Err(err).Msg("schema bootstrap failed at startup")
		}
		cancel()
	}

	publisher := events.NewPublisher(cfg.KafkaConfig, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("closing event publisher")
		}
	}()

	repo := user_info.NewUserInfoRepository(database, time.Duration(cfg.DBConfig.QueryTimeoutSeconds)*time.Second)
	accounts := account.New(repo, migrator, publisher)
	statsSvc := stats.New(repo, publisher)

	return server.New(cfg.AppConfig, log, accounts, statsSvc).Run(ctx)
}
