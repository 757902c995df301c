package cmd

import (
	"fmt"

	"github.com/MyelinBots/knightrun-go/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := newMigrator()
				if err != nil {
					return err
				}
				return m.Up(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := newMigrator()
				if err != nil {
					return err
				}
				return m.Down(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := newMigrator()
				if err != nil {
					return err
				}
				version, dirty, err := m.Version(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			},
		},
	)
}

func newMigrator() (*db.Migrator, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return db.NewMigrator(cfg.DBConfig.DSN(), log), nil
}
