package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"newsstand/orm"
	"newsstand/press"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show publication statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			topID, err := press.TopPublisher(ctx, db)
			switch {
			case errors.Is(err, orm.ErrNotFound):
				fmt.Fprintln(out, "no articles published yet")
				return nil
			case err != nil:
				return err
			}
			top, err := press.MagazineByID(ctx, db, topID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "top publisher: %s (id %d)\n", top.Name(), top.ID())

			magazines, err := press.AllMagazines(ctx, db)
			if err != nil {
				return err
			}
			for _, magazine := range magazines {
				authorIDs, err := press.ContributingAuthors(ctx, db, magazine.ID())
				if err != nil {
					return err
				}
				if len(authorIDs) == 0 {
					continue
				}
				names := make([]string, 0, len(authorIDs))
				for _, id := range authorIDs {
					author, err := press.AuthorByID(ctx, db, id)
					if err != nil {
						return err
					}
					names = append(names, author.Name())
				}
				fmt.Fprintf(out, "%s frequent contributors: %s\n", magazine.Name(), strings.Join(names, ", "))
			}
			return nil
		},
	}
}
