package main

import (
	"persona-lab/repositories"

	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		prefix string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump raw store keys with their decoded values",
		Long: `Scan the store under a key prefix. Known prefixes are model:, corpus:{name}:
and idx:model:. Secondary indexes are only listed when the prefix targets them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := repositories.Inspect(a.db, prefix, limit)
			if err != nil {
				return err
			}
			table := newTable(a.out, []string{"Key", "Type", "Detail"})
			for _, row := range rows {
				table.Append([]string{row.Key, row.Type, row.Detail})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "model:", "Key prefix to scan")
	cmd.Flags().IntVarP(&limit, "limit", "l", 100, "Maximum number of keys, 0 for all")
	return cmd
}
