package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/recon/internal/core"
	"github.com/agenthands/recon/internal/core/model"
)

type runOptions struct {
	source        string
	target        string
	output        string
	fields        []string
	minConfidence float64
	modelName     string
	workers       int
}

type runReport struct {
	Results    []model.MatchingResult `json:"results" yaml:"results"`
	Clusters   [][]string             `json:"clusters" yaml:"clusters"`
	Statistics model.Statistics       `json:"statistics" yaml:"statistics"`
}

func newRunCommand(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile a source file against a target file",
		Example: `  recon run --source ledger.json --target bank.yaml --fields name,amount
  recon run --source a.json --target b.json --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "source records file (JSON or YAML)")
	cmd.Flags().StringVar(&opts.target, "target", "", "target records file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format: table, json or yaml")
	cmd.Flags().StringSliceVar(&opts.fields, "fields", nil, "fields to compare (overrides [matching].matching_fields)")
	cmd.Flags().Float64Var(&opts.minConfidence, "min-confidence", -1, "minimum confidence (overrides the config)")
	cmd.Flags().StringVar(&opts.modelName, "model", "", "registered model to score candidates with")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel workers (overrides [concurrency].workers)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (a *app) run(cmd *cobra.Command, opts *runOptions) error {
	f, err := parseFormat(opts.output)
	if err != nil {
		return err
	}

	source, err := loadRecords(opts.source, core.SourceTag)
	if err != nil {
		return err
	}
	target, err := loadRecords(opts.target, core.TargetTag)
	if err != nil {
		return err
	}

	cfg := a.cfg.Matching.Clone()
	if len(opts.fields) > 0 {
		cfg.MatchingFields = opts.fields
	}
	if opts.minConfidence >= 0 {
		cfg.MinConfidenceThreshold = opts.minConfidence
	}
	if opts.modelName != "" {
		cfg.ModelName = opts.modelName
	}
	if len(cfg.MatchingFields) == 0 {
		return fmt.Errorf("no fields to compare: set --fields or [matching].matching_fields")
	}
	if opts.workers > 0 {
		a.engine.Matcher.Workers = opts.workers
	}

	results, err := a.engine.Reconcile(cmd.Context(), source, target, cfg)
	if err != nil {
		return err
	}
	clusters, err := a.engine.Clusters(results)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch f {
	case formatJSON:
		return writeJSON(out, runReport{Results: results, Clusters: clusters, Statistics: a.engine.Statistics()})
	case formatYAML:
		return writeYAML(out, runReport{Results: results, Clusters: clusters, Statistics: a.engine.Statistics()})
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.SourceRecord.Key(),
			r.TargetRecord.Key(),
			fmt.Sprintf("%.3f", r.ConfidenceScore),
			string(r.MatchKind),
			strings.Join(r.MatchingFields, ","),
		})
	}
	if err := writeTable(out, []string{"Source", "Target", "Confidence", "Kind", "Matching Fields"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d source records matched\n", len(results), len(source))
	return nil
}
