package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newProvisionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the target database and collection if missing",
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

			database, collection := a.store.Target()
			fmt.Fprintf(cmd.OutOrStdout(), "provisioned %s.%s\n", database, collection)
			return nil
		},
	}
}
