package main

import (
	"fmt"
	"persona-lab/services"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func newBuildCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a labeled corpus from N-Triples files",
		Long: `Label every subject of the map file carrying the name predicate:
subjects whose origin is typed as the target type in the identity file are
positive, the others negative. Files may be gzip compressed.

An existing corpus with the same name is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := services.NewDatasetService(a.log, a.corpora())
			corpus, err := service.Build(services.BuildRequest{
				Name:         a.config.CorpusName,
				IdentityPath: a.config.IdentityFile,
				MapPath:      a.config.MapFile,
				TypeIRI:      a.config.TargetType,
				Predicate:    a.config.NamePredicate,
				Balance:      a.config.Balance,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s corpus %q: %d rows, %d positive\n",
				color.New(color.FgGreen).Render("built"), a.config.CorpusName, corpus.Len(), corpus.Positives())
			return nil
		},
	}

	cmd.Flags().StringVarP(&a.config.CorpusName, "name", "n", a.config.CorpusName, "Corpus name")
	cmd.Flags().StringVar(&a.config.IdentityFile, "identity", a.config.IdentityFile, "N-Triples file typing the positive subjects")
	cmd.Flags().StringVar(&a.config.MapFile, "map", a.config.MapFile, "N-Triples file linking subjects to their labels")
	cmd.Flags().StringVar(&a.config.TargetType, "type", a.config.TargetType, "rdf:type IRI of positive subjects")
	cmd.Flags().StringVar(&a.config.NamePredicate, "predicate", a.config.NamePredicate, "Predicate carrying the label")
	cmd.Flags().BoolVar(&a.config.Balance, "balance", a.config.Balance, "Truncate the larger class to the size of the smaller one")
	return cmd
}
