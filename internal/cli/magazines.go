package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"newsstand/orm"
	"newsstand/press"
)

func newMagazinesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "magazines",
		Short: "Add and inspect magazines",
	}
	cmd.AddCommand(newMagazinesAddCmd(a), newMagazinesShowCmd(a), newMagazinesListCmd(a))
	return cmd
}

func newMagazinesAddCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a magazine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			magazine, err := press.NewMagazine(args[0], category)
			if err != nil {
				return err
			}
			if _, err := magazine.Save(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "magazine %d: %s\n", magazine.ID(), magazine.Name())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "magazine category")
	return cmd
}

func newMagazinesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a magazine with its articles and contributors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := cmd.Context()
			magazine, err := press.MagazineByID(ctx, db, id)
			if errors.Is(err, orm.ErrNotFound) {
				return fmt.Errorf("no magazine with id %d", id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if magazine.Category() != "" {
				fmt.Fprintf(out, "%s [%s] (id %d)\n", magazine.Name(), magazine.Category(), magazine.ID())
			} else {
				fmt.Fprintf(out, "%s (id %d)\n", magazine.Name(), magazine.ID())
			}

			titles, err := magazine.ArticleTitles(ctx, db)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "articles (%d):\n", len(titles))
			for _, title := range titles {
				fmt.Fprintf(out, "  %s\n", title)
			}

			contributors, err := magazine.Contributors(ctx, db)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(contributors))
			for _, author := range contributors {
				names = append(names, author.Name())
			}
			if len(names) > 0 {
				fmt.Fprintf(out, "contributors: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func newMagazinesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all magazines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			magazines, err := press.AllMagazines(cmd.Context(), db)
			if err != nil {
				return err
			}
			for _, magazine := range magazines {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", magazine.ID(), magazine.Name(), magazine.Category())
			}
			return nil
		},
	}
}
