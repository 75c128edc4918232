package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsstand/store"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		Long:  "Create the authors, magazines and articles tables.\nRunning init on an existing database is a no-op.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := store.CreateSchema(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", a.cfg.Database.Path)
			return nil
		},
	}
}
