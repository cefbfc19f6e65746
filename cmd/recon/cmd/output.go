package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

type format string

const (
	formatTable format = "table"
	formatJSON  format = "json"
	formatYAML  format = "yaml"
)

// parseFormat validates an --output value. An empty value means table on a
// terminal and JSON otherwise.
func parseFormat(s string) (format, error) {
	switch f := format(strings.ToLower(s)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)

	h := make([]any, len(headers))
	for i, v := range headers {
		h[i] = v
	}
	table.Header(h...)

	for _, row := range rows {
		r := make([]any, len(row))
		for i, v := range row {
			r[i] = v
		}
		if err := table.Append(r...); err != nil {
			return err
		}
	}
	return table.Render()
}
