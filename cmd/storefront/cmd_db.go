package main

import (
	"github.com/spf13/cobra"
)

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application().Migrate(cmd.Context(), cmd.OutOrStdout())
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application().Rollback(cmd.Context(), cmd.OutOrStdout())
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application().MigrateStatus(cmd.Context(), cmd.OutOrStdout())
	},
}

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo account and orders into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application().Seed(cmd.Context(), cmd.OutOrStdout())
	},
}
