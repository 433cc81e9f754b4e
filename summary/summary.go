// Package summary aggregates per-technique statistics across repeated
// experiment runs.
package summary

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mapgenlab/roadplot/dataset"
)

// Stat is the aggregate of one metric for one technique. Std is the sample
// standard deviation and is NaN when fewer than two samples exist.
type Stat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	N    int     `json:"n"`
}

// MarshalJSON emits NaN values as null, which encoding/json cannot
// represent as a float.
func (s Stat) MarshalJSON() ([]byte, error) {
	aux := struct {
		Mean *float64 `json:"mean"`
		Std  *float64 `json:"std"`
		N    int      `json:"n"`
	}{N: s.N}

	if !math.IsNaN(s.Mean) {
		aux.Mean = &s.Mean
	}

	if !math.IsNaN(s.Std) {
		aux.Std = &s.Std
	}

	return json.Marshal(aux)
}

// Row is the per-technique aggregate across all metrics of interest.
type Row struct {
	Technique string          `json:"technique"`
	Stats     map[string]Stat `json:"stats"`
}

// Stat returns the aggregate for the named metric, or a NaN-valued Stat
// when the technique has no samples for it.
func (r Row) Stat(metric string) Stat {
	if s, ok := r.Stats[metric]; ok {
		return s
	}

	return Stat{Mean: math.NaN(), Std: math.NaN()}
}

// Aggregate groups runs by technique display name and computes mean and
// sample standard deviation for each requested metric. Techniques appear in
// first-seen input order. Metrics absent from the dataset are skipped with
// a diagnostic.
func Aggregate(ds *dataset.Dataset, metrics []string, logger *slog.Logger) []Row {
	var order []string

	samples := make(map[string]map[string][]float64)

	for _, run := range ds.Runs {
		byMetric, ok := samples[run.Technique]
		if !ok {
			byMetric = make(map[string][]float64, len(metrics))
			samples[run.Technique] = byMetric
			order = append(order, run.Technique)
		}

		for _, metric := range metrics {
			if v, ok := run.Values[metric]; ok {
				byMetric[metric] = append(byMetric[metric], v)
			}
		}
	}

	for _, metric := range metrics {
		if !ds.HasColumn(metric) {
			logger.Warn("metric column absent from data, skipping",
				slog.String("metric", metric),
			)
		}
	}

	rows := make([]Row, 0, len(order))

	for _, technique := range order {
		row := Row{
			Technique: technique,
			Stats:     make(map[string]Stat, len(metrics)),
		}

		for metric, vals := range samples[technique] {
			mean, std := stat.MeanStdDev(vals, nil)
			row.Stats[metric] = Stat{Mean: mean, Std: std, N: len(vals)}
		}

		rows = append(rows, row)
	}

	return rows
}

// Reorder reindexes rows into the given display order. Techniques named in
// the order but absent from rows become NaN-valued rows rather than an
// error. Reordering fails only when the input rows carry duplicate
// technique names, which makes the reindex ambiguous; callers fall back to
// the unordered rows in that case.
func Reorder(rows []Row, order []string) ([]Row, error) {
	byName := make(map[string]Row, len(rows))

	for _, r := range rows {
		if _, dup := byName[r.Technique]; dup {
			return nil, fmt.Errorf("duplicate technique %q in aggregate", r.Technique)
		}

		byName[r.Technique] = r
	}

	out := make([]Row, 0, len(order))

	for _, name := range order {
		if r, ok := byName[name]; ok {
			out = append(out, r)

			continue
		}

		out = append(out, Row{Technique: name})
	}

	return out, nil
}
