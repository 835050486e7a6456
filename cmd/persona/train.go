package main

import (
	"fmt"
	"persona-lab/observability"
	"persona-lab/services"
	"time"

	"github.com/spf13/cobra"
)

func newTrainCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model on a stored corpus",
		Long: `Hash the corpus, shuffle it with the given seed, split it, run the
requested number of epochs and store the resulting model.

Interrupting the command between epochs stores nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := a.corpora().GetCorpus(a.config.CorpusName)
			if err != nil {
				return err
			}
			service := services.NewTrainingService(a.log, a.models(), observability.NewResourceReporter(a.log))
			report, err := service.Train(cmd.Context(), a.config.CorpusName, corpus, services.TrainOptions{
				Params:     a.config.Hyperparameters(),
				Epochs:     a.config.Epochs,
				TrainRatio: a.config.TrainRatio,
				Seed:       uint64(a.config.Seed),
				Reshuffle:  a.config.Reshuffle,
			})
			if err != nil {
				return err
			}

			table := newTable(a.out, []string{"Model", "Train rows", "Test rows", "Non-zeros", "Batches", "Train acc", "Test acc", "Duration"})
			table.Append([]string{
				report.ModelID.String(),
				fmt.Sprint(report.TrainRows),
				fmt.Sprint(report.TestRows),
				fmt.Sprint(report.Nnz),
				fmt.Sprint(report.Batches),
				percent(report.TrainAccuracy),
				percent(report.TestAccuracy),
				report.Duration.Round(time.Millisecond).String(),
			})
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&a.config.CorpusName, "corpus", "n", a.config.CorpusName, "Corpus to train on")
	cmd.Flags().IntVar(&a.config.MappingSize, "mapping-size", a.config.MappingSize, "Number of hashed features")
	cmd.Flags().IntVar(&a.config.BatchSize, "batch-size", a.config.BatchSize, "Rows per gradient step")
	cmd.Flags().Float64Var(&a.config.Alpha, "alpha", a.config.Alpha, "Learning rate")
	cmd.Flags().Float64Var(&a.config.C, "c", a.config.C, "L2 regularization strength")
	cmd.Flags().IntVar(&a.config.Epochs, "epochs", a.config.Epochs, "Passes over the training split")
	cmd.Flags().Float64Var(&a.config.TrainRatio, "ratio", a.config.TrainRatio, "Share of rows used for training")
	cmd.Flags().Int64Var(&a.config.Seed, "seed", a.config.Seed, "Shuffle seed")
	cmd.Flags().BoolVar(&a.config.Reshuffle, "reshuffle", a.config.Reshuffle, "Reshuffle the training split between epochs")
	return cmd
}
