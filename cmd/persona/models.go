package main

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newModelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List stored models, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.models().ListModels()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(a.out, "no model stored")
				return nil
			}

			table := newTable(a.out, []string{"ID", "Created", "Corpus", "Mapping", "Batch", "Alpha", "C", "Epochs", "Train acc", "Test acc"})
			for _, record := range records {
				params := record.Model.Hyperparameters()
				table.Append([]string{
					record.ID.String(),
					record.CreatedAt.Local().Format(time.DateTime),
					record.Corpus,
					fmt.Sprint(params.MappingSize),
					fmt.Sprint(params.BatchSize),
					fmt.Sprint(params.Alpha),
					fmt.Sprint(params.C),
					fmt.Sprint(record.Epochs),
					percent(record.TrainAccuracy),
					percent(record.TestAccuracy),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func percent(x float64) string {
	return fmt.Sprintf("%.2f%%", 100*x)
}
