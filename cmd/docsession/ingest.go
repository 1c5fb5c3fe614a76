package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unifiedui/docsession/internal/services/ingest"
)

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Insert every element of a JSON file's groups array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if err := a.store.EnsureProvisioned(ctx); err != nil {
				return err
			}

			result, err := ingest.NewIngester(a.store, loggerFor("ingest")).IngestFile(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d documents, skipped %d\n", result.Inserted, result.Skipped)
			return nil
		},
	}
}
