package main

import (
	"fmt"
	"persona-lab/observability"
	"persona-lab/services"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newScoreCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [model-id]",
		Short: "Measure the accuracy of a stored model on a corpus",
		Long:  `Score a stored model, the latest one when no ID is given, against every row of a corpus.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveModel(args)
			if err != nil {
				return err
			}
			corpus, err := a.corpora().GetCorpus(a.config.CorpusName)
			if err != nil {
				return err
			}
			service := services.NewTrainingService(a.log, a.models(), observability.NewResourceReporter(a.log))
			accuracy, err := service.Evaluate(id, corpus)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "model %s on %q (%d rows): %s\n", id, a.config.CorpusName, corpus.Len(), percent(accuracy))
			return nil
		},
	}
	cmd.Flags().StringVarP(&a.config.CorpusName, "corpus", "n", a.config.CorpusName, "Corpus to score against")
	return cmd
}

// resolveModel parses an optional model ID argument, falling back to the latest model.
func (a *app) resolveModel(args []string) (uuid.UUID, error) {
	if len(args) > 0 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid model id %q: %w", args[0], err)
		}
		return id, nil
	}
	record, err := a.models().LatestModel()
	if err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}
