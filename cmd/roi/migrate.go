package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/roicalc/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd.Context(), true, false)
		if err != nil {
			return err
		}
		defer database.Close()

		version, err := migrations.Version(database)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin user and the demo scenario if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd.Context(), true, true)
		if err != nil {
			return err
		}
		return database.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
