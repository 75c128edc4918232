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

func newAuthorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Add and inspect authors",
	}
	cmd.AddCommand(newAuthorsAddCmd(a), newAuthorsShowCmd(a), newAuthorsListCmd(a))
	return cmd
}

func newAuthorsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			author, err := press.NewAuthor(args[0])
			if err != nil {
				return err
			}
			if _, err := author.Save(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "author %d: %s\n", author.ID(), author.Name())
			return nil
		},
	}
}

func newAuthorsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an author with articles, magazines and topic areas",
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
			author, err := press.AuthorByID(ctx, db, id)
			if errors.Is(err, orm.ErrNotFound) {
				return fmt.Errorf("no author with id %d", id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (id %d)\n", author.Name(), author.ID())

			articles, err := author.Articles(ctx, db)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "articles (%d):\n", len(articles))
			for _, art := range articles {
				fmt.Fprintf(out, "  %d. %s (%s)\n", art.ID(), art.Title(), art.Magazine().Name())
			}

			magazines, err := author.Magazines(ctx, db)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(magazines))
			for _, m := range magazines {
				names = append(names, m.Name())
			}
			if len(names) > 0 {
				fmt.Fprintf(out, "magazines: %s\n", strings.Join(names, ", "))
			}

			topics, err := author.TopicAreas(ctx, db)
			if err != nil {
				return err
			}
			if len(topics) > 0 {
				fmt.Fprintf(out, "topic areas: %s\n", strings.Join(topics, ", "))
			}
			return nil
		},
	}
}

func newAuthorsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			authors, err := press.AllAuthors(cmd.Context(), db)
			if err != nil {
				return err
			}
			for _, author := range authors {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", author.ID(), author.Name())
			}
			return nil
		},
	}
}
