package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsstand/press"
	"newsstand/store"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a small demo data set",
		Long:  "Create the schema if needed and insert a handful of demo authors,\nmagazines and articles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			if err := store.CreateSchema(ctx, db); err != nil {
				return err
			}

			alice, err := press.NewAuthor("Alice")
			if err != nil {
				return err
			}
			bob, err := press.NewAuthor("Bob")
			if err != nil {
				return err
			}
			tech, err := press.NewMagazine("Tech Today", "Technology")
			if err != nil {
				return err
			}
			arts, err := press.NewMagazine("Arts Weekly", "Culture")
			if err != nil {
				return err
			}

			seeds := []struct {
				author   *press.Author
				magazine *press.Magazine
				title    string
			}{
				{alice, tech, "AI Trends"},
				{alice, tech, "Quantum Leaps"},
				{alice, tech, "Chips Ahoy"},
				{bob, tech, "Batteries Included"},
				{alice, arts, "Museum Nights"},
			}
			for _, s := range seeds {
				if _, err := s.author.AddArticle(ctx, db, s.magazine, s.title); err != nil {
					return fmt.Errorf("seed %q: %w", s.title, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded 2 authors, 2 magazines, %d articles\n", len(seeds))
			return nil
		},
	}
}
