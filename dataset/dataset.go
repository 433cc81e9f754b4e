// Package dataset loads road-generation experiment results from CSV. Each
// row is one run of one technique; the loader renames machine-generated
// technique identifiers to display names and derives the memory column in
// megabytes.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
)

// Column names recognized in the experiment results CSV.
const (
	ColTechnique     = "Technique"
	ColTime          = "GenerationTime_s"
	ColMemoryBytes   = "MemoryUsed_bytes"
	ColMemoryMB      = "MemoryUsed_MB"
	ColIntersections = "IntersectionCount"
	ColRoadLength    = "AvgRoadLength_m"
	ColCircuity      = "AvgCircuity"
	ColSteepness     = "AvgSteepness_deg"
)

const bytesPerMB = 1 << 20

// metricColumns are the numeric source columns the analysis understands.
// Anything else in the header besides Technique is carried data for other
// tools (map names, timestamps, notes) and is ignored.
var metricColumns = map[string]bool{
	ColTime:          true,
	ColMemoryBytes:   true,
	ColIntersections: true,
	ColRoadLength:    true,
	ColCircuity:      true,
	ColSteepness:     true,
}

// techniqueMap renames the generator's internal technique identifiers to
// the display names used throughout the report. Identifiers not in the map
// pass through unchanged.
var techniqueMap = map[string]string{
	"AgentBasedRandomWalk": "Abordagem Baseada em Agentes",
	"LSystem":              "L-systems",
	"PathBasedAStarPOIs":   "Algoritmos Baseados em Grafos",
}

// TechniqueOrder is the fixed display order of the three techniques,
// independent of input row order.
var TechniqueOrder = []string{
	"Abordagem Baseada em Agentes",
	"L-systems",
	"Algoritmos Baseados em Grafos",
}

// Run is one experiment repetition: a display-named technique plus its
// numeric metric values keyed by column name.
type Run struct {
	Technique string
	Values    map[string]float64
}

// Dataset holds every loaded run and the numeric columns present in the
// source file, in header order.
type Dataset struct {
	Columns []string
	Runs    []Run
}

// HasColumn reports whether the named numeric column was present in the
// source file (or derived from it).
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// MapTechnique returns the display name for a raw technique identifier,
// or the identifier itself when it is not in the rename table.
func MapTechnique(raw string) string {
	if display, ok := techniqueMap[raw]; ok {
		return display
	}

	return raw
}

// Load reads the experiment CSV at path. A missing file is reported as a
// diagnostic and returns (nil, nil): callers treat a nil dataset as a soft
// abort of the whole run.
func Load(path string, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("Error: data file not found at %s\n", path)
			fmt.Println("Ensure the experiment results CSV exists before running the analysis.")

			return nil, nil
		}

		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f, logger)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	logger.Info("data loaded",
		slog.String("path", path),
		slog.Int("rows", len(ds.Runs)),
		slog.Int("columns", len(ds.Columns)),
	)

	return ds, nil
}

// Read parses CSV experiment results from r. The first record is the
// header; recognized metric columns are parsed as floats and unrecognized
// columns are ignored. Rows with an unparsable metric cell are skipped
// with a diagnostic rather than failing the load.
func Read(r io.Reader, logger *slog.Logger) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are skipped below, not fatal

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV: no header row")
	}

	header := records[0]
	techIdx := -1
	numeric := make([]int, 0, len(header))

	for i, name := range header {
		if name == ColTechnique {
			techIdx = i

			continue
		}

		if metricColumns[name] {
			numeric = append(numeric, i)
		}
	}

	if techIdx < 0 {
		return nil, fmt.Errorf("missing required column %q", ColTechnique)
	}

	ds := &Dataset{Columns: make([]string, 0, len(numeric))}
	for _, i := range numeric {
		ds.Columns = append(ds.Columns, header[i])
	}

	for rowNum, record := range records[1:] {
		if len(record) != len(header) {
			logger.Warn("skipping malformed row",
				slog.Int("row", rowNum+2),
				slog.Int("cells", len(record)),
			)

			continue
		}

		run := Run{
			Technique: MapTechnique(record[techIdx]),
			Values:    make(map[string]float64, len(numeric)+1),
		}

		ok := true

		for _, i := range numeric {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				logger.Warn("skipping row with unparsable cell",
					slog.Int("row", rowNum+2),
					slog.String("column", header[i]),
					slog.String("cell", record[i]),
				)

				ok = false

				break
			}

			run.Values[header[i]] = v
		}

		if !ok {
			continue
		}

		ds.Runs = append(ds.Runs, run)
	}

	deriveMemoryMB(ds)

	return ds, nil
}

// deriveMemoryMB adds the MemoryUsed_MB column to every run when the
// source byte-count column is present.
func deriveMemoryMB(ds *Dataset) {
	if !ds.HasColumn(ColMemoryBytes) {
		return
	}

	for i := range ds.Runs {
		ds.Runs[i].Values[ColMemoryMB] = ds.Runs[i].Values[ColMemoryBytes] / bytesPerMB
	}

	ds.Columns = append(ds.Columns, ColMemoryMB)
}
