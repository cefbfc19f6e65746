package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAlgorithmsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List registered algorithms and models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows [][]string
			for _, name := range a.engine.Registry.Algorithms() {
				alg, err := a.engine.Registry.Algorithm(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, alg.Kind.String(), fmt.Sprintf("%.2f", alg.Threshold)})
			}
			for _, name := range a.engine.Registry.Models() {
				rows = append(rows, []string{name, "model", ""})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Name", "Kind", "Threshold"}, rows)
		},
	}
}
