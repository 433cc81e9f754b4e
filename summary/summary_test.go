package summary

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/mapgenlab/roadplot/dataset"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTest(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.Read(strings.NewReader(csv), testLogger())
	if err != nil {
		t.Fatalf("load test data: %v", err)
	}

	return ds
}

func TestAggregateMeanStd(t *testing.T) {
	ds := loadTest(t, `Technique,GenerationTime_s
LSystem,1.0
LSystem,2.0
LSystem,3.0
`)

	rows := Aggregate(ds, []string{dataset.ColTime}, testLogger())
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	s := rows[0].Stat(dataset.ColTime)

	if s.Mean != 2.0 {
		t.Errorf("mean = %v, want 2.0", s.Mean)
	}
	// Sample standard deviation of {1,2,3} is exactly 1.
	if math.Abs(s.Std-1.0) > 1e-12 {
		t.Errorf("std = %v, want 1.0", s.Std)
	}
	if s.N != 3 {
		t.Errorf("n = %d, want 3", s.N)
	}
}

func TestAggregateSingleSampleStdNaN(t *testing.T) {
	ds := loadTest(t, `Technique,GenerationTime_s
LSystem,1.5
`)

	rows := Aggregate(ds, []string{dataset.ColTime}, testLogger())
	s := rows[0].Stat(dataset.ColTime)

	if s.Mean != 1.5 {
		t.Errorf("mean = %v, want 1.5", s.Mean)
	}
	if !math.IsNaN(s.Std) {
		t.Errorf("std = %v, want NaN for a single sample", s.Std)
	}
}

func TestAggregateGroupsByMappedLabel(t *testing.T) {
	ds := loadTest(t, `Technique,GenerationTime_s
AgentBasedRandomWalk,1.0
LSystem,10.0
AgentBasedRandomWalk,3.0
`)

	rows := Aggregate(ds, []string{dataset.ColTime}, testLogger())
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	if rows[0].Technique != "Abordagem Baseada em Agentes" {
		t.Errorf("first technique = %q", rows[0].Technique)
	}
	if got := rows[0].Stat(dataset.ColTime).Mean; got != 2.0 {
		t.Errorf("agent mean = %v, want 2.0", got)
	}
	if got := rows[1].Stat(dataset.ColTime).Mean; got != 10.0 {
		t.Errorf("lsystem mean = %v, want 10.0", got)
	}
}

func TestAggregateSkipsAbsentMetric(t *testing.T) {
	ds := loadTest(t, `Technique,GenerationTime_s
LSystem,1.0
LSystem,2.0
`)

	rows := Aggregate(ds,
		[]string{dataset.ColTime, dataset.ColIntersections}, testLogger())

	s := rows[0].Stat(dataset.ColIntersections)
	if !math.IsNaN(s.Mean) {
		t.Errorf("absent metric mean = %v, want NaN", s.Mean)
	}
	if s.N != 0 {
		t.Errorf("absent metric n = %d, want 0", s.N)
	}
}

func TestReorderFixedOrder(t *testing.T) {
	rows := []Row{
		{Technique: "Algoritmos Baseados em Grafos"},
		{Technique: "Abordagem Baseada em Agentes"},
		{Technique: "L-systems"},
	}

	ordered, err := Reorder(rows, dataset.TechniqueOrder)
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	for i, want := range dataset.TechniqueOrder {
		if ordered[i].Technique != want {
			t.Errorf("position %d = %q, want %q", i, ordered[i].Technique, want)
		}
	}
}

func TestReorderMissingTechniqueBecomesNaNRow(t *testing.T) {
	rows := []Row{
		{Technique: "L-systems", Stats: map[string]Stat{
			dataset.ColTime: {Mean: 1, Std: 0.1, N: 5},
		}},
	}

	ordered, err := Reorder(rows, dataset.TechniqueOrder)
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	if len(ordered) != 3 {
		t.Fatalf("rows = %d, want 3", len(ordered))
	}

	missing := ordered[0].Stat(dataset.ColTime)
	if !math.IsNaN(missing.Mean) || !math.IsNaN(missing.Std) {
		t.Errorf("missing technique stat = %+v, want NaNs", missing)
	}

	if got := ordered[1].Stat(dataset.ColTime).Mean; got != 1 {
		t.Errorf("present technique mean = %v, want 1", got)
	}
}

func TestReorderDuplicateFails(t *testing.T) {
	rows := []Row{
		{Technique: "L-systems"},
		{Technique: "L-systems"},
	}

	if _, err := Reorder(rows, dataset.TechniqueOrder); err == nil {
		t.Error("expected error for duplicate technique names")
	}
}
