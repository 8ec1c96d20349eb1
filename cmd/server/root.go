package main

import (
	"github.com/spf13/cobra"
)

var skipMigrations bool

// rootCmd runs the server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "chirp",
	Short: "Chirp - emoji-only microblog API",
	Long: `Chirp serves the emoji-only microblog API.

Configuration is read from the environment (and an optional .env file).

Examples:
  chirp                 # same as "chirp serve"
  chirp serve           # run the HTTP server
  chirp migrate up      # apply pending migrations
  chirp migrate status  # show migration state`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
