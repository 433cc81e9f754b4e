// Package main provides the CLI entry point for roadplot, a batch report
// generator comparing procedural road-generation techniques.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapgenlab/roadplot/dataset"
	"github.com/mapgenlab/roadplot/report"
	"github.com/mapgenlab/roadplot/synth"
)

const (
	defaultCSVPath = "../ExperimentResults/TCC_Experiment_Results.csv"
	defaultOutDir  = "plots"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "roadplot",
		Short: "Procedural road-generation experiment report generator",
		Long: `Roadplot aggregates repeated experiment runs of three procedural
map/road-generation techniques from a results CSV and renders annotated
comparison bar charts for efficiency, structural realism and adaptability.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPlotsCmd(logger))
	root.AddCommand(newSampleCmd(logger))

	return root
}

func newPlotsCmd(logger *slog.Logger) *cobra.Command {
	var (
		csvPath    string
		outDir     string
		showTable  bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plots",
		Short: "Generate the annotated comparison charts",
		Long: `Load the experiment results CSV, aggregate mean and standard
deviation per technique, and render the fixed chart sequence as PNG files.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlots(logger, csvPath, outDir, showTable, outputJSON)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&csvPath, "csv", defaultCSVPath,
		"Path to the experiment results CSV")
	flags.StringVar(&outDir, "out", defaultOutDir,
		"Directory for the generated chart images")
	flags.BoolVar(&showTable, "table", false,
		"Also print a markdown summary table to stdout")
	flags.BoolVar(&outputJSON, "json", false,
		"Also print the aggregate as JSON to stdout")

	return cmd
}

func runPlots(
	logger *slog.Logger,
	csvPath, outDir string,
	showTable, outputJSON bool,
) error {
	ds, err := dataset.Load(csvPath, logger)
	if err != nil {
		return err
	}

	// Missing input file: the loader already reported it. Soft abort.
	if ds == nil {
		fmt.Println("Analysis aborted due to missing data.")

		return nil
	}

	rows := report.Summarize(ds, logger)

	paths, err := report.GeneratePlots(ds, rows, outDir, logger)
	if err != nil {
		return fmt.Errorf("generate plots: %w", err)
	}

	if showTable {
		if err := report.Generate(os.Stdout, rows); err != nil {
			return fmt.Errorf("generate table: %w", err)
		}
	}

	if outputJSON {
		if err := report.GenerateJSON(os.Stdout, rows); err != nil {
			return fmt.Errorf("generate JSON: %w", err)
		}
	}

	fmt.Printf("Saved %d charts to %s\n", len(paths), outDir)

	return nil
}

func newSampleCmd(logger *slog.Logger) *cobra.Command {
	var (
		out  string
		reps int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic experiment results CSV",
		Long: `Generate a deterministic synthetic results CSV with plausible
per-technique value ranges, for smoke-testing the analysis pipeline.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSample(logger, out, reps, seed)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&out, "out", "sample_results.csv",
		"Path of the CSV to write")
	flags.IntVar(&reps, "reps", 30,
		"Repetitions per technique")
	flags.Int64Var(&seed, "seed", 42,
		"Random seed")

	return cmd
}

func runSample(logger *slog.Logger, out string, reps int, seed int64) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	gen := synth.NewGenerator(synth.Config{Repetitions: reps, Seed: seed})

	summary, err := gen.Generate(f)
	if err != nil {
		f.Close()

		return fmt.Errorf("generate sample data: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	logger.Info("sample data written",
		slog.String("path", out),
		slog.Int("rows", summary.Rows),
		slog.Int("techniques", summary.Techniques),
	)

	return nil
}
