package main

import (
	"fmt"
	"io"
	"log/slog"
	"persona-lab/internal"
	"persona-lab/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	config *internal.Config
	log    *slog.Logger
	db     *badger.DB
	out    io.Writer
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "persona",
		Short: "Persona - tells person names apart from other labels",
		Long: `Persona builds labeled corpora from N-Triples graphs, trains a hashed
logistic regression on them and classifies free text as a person name or not.

Examples:
  persona build --identity persons.nt.gz --map labels.nt.gz --name dbpedia
  persona train --corpus dbpedia --epochs 50
  persona score --corpus dbpedia
  persona predict "Ada Lovelace" "Paris"
  persona models
  persona inspect --prefix corpus:dbpedia:`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.BadgerFilepath, "db", a.config.BadgerFilepath, "Path to the Badger directory")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "Log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		newBuildCommand(a),
		newTrainCommand(a),
		newScoreCommand(a),
		newPredictCommand(a),
		newModelsCommand(a),
		newInspectCommand(a),
	)
	return rootCmd
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	a.log = logs.GetLoggerFromString(a.config.LogLevel)
	a.out = cmd.OutOrStdout()

	db, err := badger.Open(badger.DefaultOptions(a.config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	a.db = db
	return nil
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	a.log.Debug("Closing BadgerDB...")
	_ = a.db.Close()
	a.db = nil
}

func (a *app) models() repositories.ModelRepository {
	return repositories.NewModelRepository(a.db, a.log)
}

func (a *app) corpora() repositories.CorpusRepository {
	return repositories.NewCorpusRepository(a.db, a.log)
}
