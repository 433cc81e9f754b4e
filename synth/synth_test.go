package synth

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Repetitions: 10, Seed: 42}

	var buf1, buf2 bytes.Buffer

	sum1, err := NewGenerator(cfg).Generate(&buf1)
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}

	sum2, err := NewGenerator(cfg).Generate(&buf2)
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	if buf1.String() != buf2.String() {
		t.Error("output is not deterministic for same seed")
	}

	if sum1 != sum2 {
		t.Errorf("summaries differ: %+v vs %+v", sum1, sum2)
	}
}

func TestGenerateRowCounts(t *testing.T) {
	tests := []struct {
		name     string
		reps     int
		wantRows int
	}{
		{"thirty reps", 30, 90},
		{"one rep", 1, 3},
		{"zero reps", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			sum, err := NewGenerator(Config{Repetitions: tt.reps, Seed: 1}).Generate(&buf)
			if err != nil {
				t.Fatalf("generation failed: %v", err)
			}

			if sum.Rows != tt.wantRows {
				t.Errorf("rows = %d, want %d", sum.Rows, tt.wantRows)
			}
			if sum.Techniques != 3 {
				t.Errorf("techniques = %d, want 3", sum.Techniques)
			}
		})
	}
}

func TestGenerateValidCSV(t *testing.T) {
	var buf bytes.Buffer

	if _, err := NewGenerator(Config{Repetitions: 5, Seed: 7}).Generate(&buf); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 16 { // header + 5*3 rows
		t.Fatalf("records = %d, want 16", len(records))
	}

	if records[0][0] != "Technique" {
		t.Errorf("first header cell = %q, want Technique", records[0][0])
	}

	for i, rec := range records[1:] {
		if len(rec) != len(records[0]) {
			t.Errorf("row %d has %d cells, want %d", i+2, len(rec), len(records[0]))
		}
	}
}
