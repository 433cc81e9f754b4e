// Package report drives the fixed chart sequence and formats aggregate
// results into comparison tables.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mapgenlab/roadplot/chart"
	"github.com/mapgenlab/roadplot/dataset"
	"github.com/mapgenlab/roadplot/summary"
)

// chartSpec binds one metric column to its chart configuration and output
// filename. The two-digit prefix keeps the output set sortable in the
// intended reading order.
type chartSpec struct {
	Metric string
	File   string
	Config chart.Config
}

// charts is the full report sequence: efficiency (log scale), structural
// realism, functional adaptability.
var charts = []chartSpec{
	{
		Metric: dataset.ColTime,
		File:   "01_efficiency_time_comparison_barchart_annotated.png",
		Config: chart.Config{
			Title:    "Comparação do Tempo Médio de Geração por Técnica (30 Repetições)",
			XLabel:   "Técnica de Geração",
			YLabel:   "Tempo Médio de Geração (segundos, escala log)",
			Unit:     "s",
			PrecLow:  4,
			PrecHigh: 1,
			LogY:     true,
		},
	},
	{
		Metric: dataset.ColMemoryMB,
		File:   "02_efficiency_memory_comparison_barchart_annotated.png",
		Config: chart.Config{
			Title:    "Comparação do Uso Médio de Memória por Técnica (30 Repetições)",
			XLabel:   "Técnica de Geração",
			YLabel:   "Uso Médio de Memória (Megabytes, escala log)",
			Unit:     "MB",
			PrecLow:  2,
			PrecHigh: 1,
			LogY:     true,
		},
	},
	{
		Metric: dataset.ColIntersections,
		File:   "03_structural_intersections_comparison_barchart_annotated.png",
		Config: chart.Config{
			Title:    "Comparação do Número Médio de Interseções por Técnica",
			XLabel:   "Técnica de Geração",
			YLabel:   "Número Médio de Interseções",
			PrecLow:  2,
			PrecHigh: 0,
		},
	},
	{
		Metric: dataset.ColRoadLength,
		File:   "04_structural_road_length_comparison_barchart_annotated.png",
		Config: chart.Config{
			Title:    "Comparação do Comprimento Médio das Vias por Técnica",
			XLabel:   "Técnica de Geração",
			YLabel:   "Comprimento Médio das Vias (metros)",
			Unit:     "m",
			PrecLow:  2,
			PrecHigh: 1,
		},
	},
	{
		Metric: dataset.ColCircuity,
		File:   "05_structural_circuity_comparison_barchart_annotated.png",
		Config: chart.Config{
			Title:    "Comparação da Circuidade Média por Técnica",
			XLabel:   "Técnica de Geração",
			YLabel:   "Circuidade Média",
			PrecLow:  3,
			PrecHigh: 2,
		},
	},
	{
		Metric: dataset.ColSteepness,
		File:   "06_adaptability_steepness_comparison_barchart_annotated.png",
		Config: chart.Config{
			Title:    "Comparação da Inclinação Média das Vias por Técnica",
			XLabel:   "Técnica de Geração",
			YLabel:   "Inclinação Média das Vias (graus)",
			Unit:     "°",
			PrecLow:  2,
			PrecHigh: 1,
		},
	},
}

// Metrics returns the metric columns the report charts, in output order.
func Metrics() []string {
	out := make([]string, len(charts))
	for i, c := range charts {
		out[i] = c.Metric
	}

	return out
}

// Summarize aggregates the dataset over the report's metrics and reindexes
// the result into the fixed technique display order. A reindex failure
// falls back to the unordered aggregate with a diagnostic.
func Summarize(ds *dataset.Dataset, logger *slog.Logger) []summary.Row {
	rows := summary.Aggregate(ds, Metrics(), logger)

	ordered, err := summary.Reorder(rows, dataset.TechniqueOrder)
	if err != nil {
		logger.Warn("could not reorder techniques, using input order",
			slog.String("error", err.Error()),
		)

		return rows
	}

	return ordered
}

// GeneratePlots renders one annotated bar chart per metric present in the
// dataset into outDir, creating it if absent, and returns the paths
// written. Metrics missing from the data skip only their own chart.
func GeneratePlots(
	ds *dataset.Dataset,
	rows []summary.Row,
	outDir string,
	logger *slog.Logger,
) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	var paths []string

	for _, spec := range charts {
		if !ds.HasColumn(spec.Metric) {
			logger.Warn("metric absent from data, skipping chart",
				slog.String("metric", spec.Metric),
				slog.String("file", spec.File),
			)

			continue
		}

		bars := make([]chart.Bar, 0, len(rows))

		for _, row := range rows {
			s := row.Stat(spec.Metric)
			bars = append(bars, chart.Bar{
				Label: row.Technique,
				Mean:  s.Mean,
				Std:   s.Std,
			})
		}

		path := filepath.Join(outDir, spec.File)
		if err := chart.Render(spec.Config, bars, path); err != nil {
			return paths, fmt.Errorf("render %s: %w", spec.File, err)
		}

		logger.Info("chart saved", slog.String("path", path))

		paths = append(paths, path)
	}

	return paths, nil
}
