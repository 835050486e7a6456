package main

import (
	"bufio"
	"fmt"
	"persona-lab/services"
	"strings"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func newPredictCommand(a *app) *cobra.Command {
	var modelID string
	cmd := &cobra.Command{
		Use:   "predict [text...]",
		Short: "Classify text with a stored model",
		Long: `Classify each argument as a person name (1) or not (0). Without
arguments, read one text per line from stdin until EOF.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := uuid.Nil
			if modelID != "" {
				parsed, err := uuid.Parse(modelID)
				if err != nil {
					return fmt.Errorf("invalid model id %q: %w", modelID, err)
				}
				id = parsed
			}
			service, err := services.LoadPredictionService(a.log, a.models(), id)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				for _, text := range args {
					if err := a.printPrediction(service, text); err != nil {
						return err
					}
				}
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(a.out, "Enter string: ")
			for scanner.Scan() {
				if err := cmd.Context().Err(); err != nil {
					return nil
				}
				if text := strings.TrimSpace(scanner.Text()); text != "" {
					if err := a.printPrediction(service, text); err != nil {
						return err
					}
				}
				fmt.Fprint(a.out, "Enter string: ")
			}
			fmt.Fprintln(a.out)
			return scanner.Err()
		},
	}
	cmd.Flags().StringVarP(&modelID, "model", "m", "", "Model ID (defaults to the latest model)")
	return cmd
}

var (
	positive = color.New(color.FgGreen, color.OpBold)
	negative = color.New(color.FgRed)
)

func (a *app) printPrediction(service services.IPredictionService, text string) error {
	prediction, err := service.Predict(text)
	if err != nil {
		return err
	}
	style := negative
	if prediction.Label == 1 {
		style = positive
	}
	fmt.Fprintf(a.out, "%s %s (p=%.4f)\n", style.Render(fmt.Sprint(prediction.Label)), text, prediction.Probability)
	return nil
}
