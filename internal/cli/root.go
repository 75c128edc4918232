// Package cli implements the newsstand command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"newsstand/internal/config"
	"newsstand/orm"
	"newsstand/store"
)

// Version is set at build time.
var Version = "0.1.0"

type app struct {
	cfgFile string
	dbPath  string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd creates the root command and wires all subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "newsstand",
		Short:         "Manage a small magazine archive",
		Long:          "newsstand tracks authors, magazines and the articles linking them\nin a single SQLite file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.Database.Path = a.dbPath
			}
			a.cfg = cfg
			a.logger = newLogger(cfg.Log.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default "+config.FileName+" if present)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database file (overrides config)")

	root.AddCommand(
		newInitCmd(a),
		newSeedCmd(a),
		newAuthorsCmd(a),
		newMagazinesCmd(a),
		newStatsCmd(a),
		newVersionCmd(),
	)
	return root
}

// openDB opens the configured database. Commands that need the schema
// in place call store.CreateSchema themselves.
func (a *app) openDB() (*orm.DB, error) {
	opts := []store.Option{}
	if a.cfg.Database.ForeignKeys {
		opts = append(opts, store.WithForeignKeys())
	}
	if a.cfg.Log.Queries {
		opts = append(opts, store.WithLogger(orm.SlogLogger{L: a.logger}))
	}
	db, err := store.Open(a.cfg.Database.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
