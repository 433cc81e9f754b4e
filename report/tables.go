package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mapgenlab/roadplot/dataset"
	"github.com/mapgenlab/roadplot/summary"
)

// tableColumns pairs chart metrics with short table headers, in the same
// order the charts are emitted.
var tableColumns = []struct {
	Metric string
	Header string
}{
	{dataset.ColTime, "Time (s)"},
	{dataset.ColMemoryMB, "Memory (MB)"},
	{dataset.ColIntersections, "Intersections"},
	{dataset.ColRoadLength, "Road Length (m)"},
	{dataset.ColCircuity, "Circuity"},
	{dataset.ColSteepness, "Steepness (°)"},
}

// Generate writes a markdown comparison table of the aggregate to w.
func Generate(w io.Writer, rows []summary.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Experiment Summary")
	fmt.Fprintln(w)

	header := "| Technique |"
	rule := "|-----------|"

	for _, col := range tableColumns {
		header += " " + col.Header + " |"
		rule += strings.Repeat("-", len(col.Header)+2) + "|"
	}

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)

	for _, row := range rows {
		fmt.Fprintf(w, "| %s |", row.Technique)

		for _, col := range tableColumns {
			fmt.Fprintf(w, " %s |", formatStat(row.Stat(col.Metric)))
		}

		fmt.Fprintln(w)
	}

	return nil
}

// GenerateJSON writes the aggregate rows as indented JSON to w.
func GenerateJSON(w io.Writer, rows []summary.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rows)
}

func formatStat(s summary.Stat) string {
	if math.IsNaN(s.Mean) {
		return "-"
	}

	if math.IsNaN(s.Std) {
		return trimZeros(fmt.Sprintf("%.4f", s.Mean))
	}

	return fmt.Sprintf("%s ± %s",
		trimZeros(fmt.Sprintf("%.4f", s.Mean)),
		trimZeros(fmt.Sprintf("%.4f", s.Std)),
	)
}

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")

	return strings.TrimRight(s, ".")
}
