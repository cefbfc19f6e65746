package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/recon/internal/core/model"
)

func newSimilarityCommand(a *app) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:     "similarity A B",
		Short:   "Score two strings with a registered algorithm",
		Example: `  recon similarity --algorithm jaro_winkler MARTHA MARHTA`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := a.engine.Registry.Algorithm(algorithm)
			if err != nil {
				return err
			}
			score := alg.Similarity(args[0], args[1])
			verdict := "below"
			if score >= alg.Threshold {
				verdict = "meets"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.4f (%s threshold %.2f)\n", algorithm, score, verdict, alg.Threshold)
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", model.DefaultAlgorithm, "registered algorithm name")
	return cmd
}
