// Package main is the entry point for the docsession command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags, each overriding its environment variable when set.
var (
	flagURI        string
	flagDocDBType  string
	flagDatabase   string
	flagCollection string
	verbosity      int
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "docsession",
		Short:        "docsession - document database session manager",
		Long:         `docsession connects to a MongoDB-compatible server, provisions a database and collection, and runs single-field CRUD against it.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagURI, "uri", "", "Connection address, e.g. mongodb://localhost:27017 (or set MONGODB_URI)")
	flags.StringVar(&flagDocDBType, "docdb-type", "", "Backend type: mongodb or memory (or set DOCDB_TYPE)")
	flags.StringVarP(&flagDatabase, "database", "d", "", "Database name (or set MONGODB_DATABASE)")
	flags.StringVarP(&flagCollection, "collection", "c", "", "Collection name (or set MONGODB_COLLECTION)")
	flags.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(
		newServeCommand(),
		newProvisionCommand(),
		newIngestCommand(),
		newDemoCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "docsession %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
	)

	return rootCmd
}
