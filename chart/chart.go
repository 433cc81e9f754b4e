// Package chart renders annotated per-technique comparison bar charts with
// mean bars, standard-deviation whiskers, and value labels.
package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Config describes one comparison chart.
type Config struct {
	Title  string
	XLabel string
	YLabel string

	// Annotation formatting, per the two-tier precision policy.
	Unit     string
	PrecLow  int
	PrecHigh int

	// LogY renders the vertical axis on a logarithmic scale. Used for
	// metrics whose magnitudes span orders of magnitude across techniques.
	LogY bool
}

// Bar is one technique's aggregated value. A NaN mean renders as a
// zero-height bar with no whisker or annotation.
type Bar struct {
	Label string
	Mean  float64
	Std   float64
}

// meanErrors feeds YErrorBars: bar-center positions plus their
// standard-deviation spreads.
type meanErrors struct {
	plotter.XYs
	plotter.YErrors
}

// Render draws the bars with error whiskers and annotations and saves the
// chart as a PNG at path.
func Render(cfg Config, bars []Bar, path string) error {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel

	values := make(plotter.Values, len(bars))
	names := make([]string, len(bars))

	for i, b := range bars {
		v := b.Mean
		if math.IsNaN(v) {
			v = 0
		}

		values[i] = v
		names[i] = b.Label
	}

	// The floor is only meaningful on a log axis, where it becomes both
	// the axis minimum and the bar bottoms.
	floor := 0.0
	if cfg.LogY {
		floor = logFloor(bars)
	}

	bc, err := newBars(values, floor)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}

	bc.LineStyle.Width = vg.Length(0)
	bc.Color = color.RGBA{R: 114, G: 147, B: 203, A: 255}

	p.Add(bc)
	p.NominalX(names...)

	whiskers := meanErrors{}
	labels := plotter.XYLabels{}

	for i, b := range bars {
		if math.IsNaN(b.Mean) {
			continue
		}

		// A log axis has no position for a zero mean; the bar stays
		// zero-height at the floor and gets no whisker or label.
		if cfg.LogY && b.Mean <= 0 {
			continue
		}

		std := b.Std
		if math.IsNaN(std) {
			std = 0
		}

		low := std
		if cfg.LogY && b.Mean-low <= floor {
			low = b.Mean - floor
		}

		whiskers.XYs = append(whiskers.XYs, plotter.XY{X: float64(i), Y: b.Mean})
		whiskers.YErrors = append(whiskers.YErrors, struct{ Low, High float64 }{low, std})

		ann := Annotate(i, b.Mean, b.Std, cfg.Unit, cfg.PrecLow, cfg.PrecHigh)
		labels.XYs = append(labels.XYs, plotter.XY{X: ann.X, Y: ann.Y})
		labels.Labels = append(labels.Labels, ann.Text)
	}

	if len(whiskers.XYs) > 0 {
		ebars, err := plotter.NewYErrorBars(whiskers)
		if err != nil {
			return fmt.Errorf("error bars: %w", err)
		}

		ebars.Color = color.Black
		ebars.LineStyle.Width = vg.Points(1)
		ebars.CapWidth = vg.Points(5)

		p.Add(ebars)

		lbls, err := plotter.NewLabels(labels)
		if err != nil {
			return fmt.Errorf("labels: %w", err)
		}

		for i := range lbls.TextStyle {
			lbls.TextStyle[i].XAlign = draw.XCenter
		}

		p.Add(lbls)
	}

	if cfg.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Min = floor
		p.Y.Max *= 2
	} else {
		p.Y.Max *= 1.15
	}

	if err := p.Save(10*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

// newBars builds the bar plotter. With a positive floor (log axis), the
// visible bars are stacked on a hidden baseline chart whose height is the
// floor: a log scale cannot transform the default bar bottom of zero, so
// every bar must start at a positive value. The baseline is never added to
// the plot and is never drawn.
func newBars(values plotter.Values, floor float64) (*plotter.BarChart, error) {
	width := vg.Points(40)

	if floor <= 0 {
		return plotter.NewBarChart(values, width)
	}

	base := make(plotter.Values, len(values))
	visible := make(plotter.Values, len(values))

	for i, v := range values {
		base[i] = floor

		visible[i] = v - floor
		if visible[i] < 0 {
			visible[i] = 0
		}
	}

	baseline, err := plotter.NewBarChart(base, width)
	if err != nil {
		return nil, err
	}

	bc, err := plotter.NewBarChart(visible, width)
	if err != nil {
		return nil, err
	}

	bc.StackOn(baseline)

	return bc, nil
}

// logFloor picks a positive lower axis bound one decade below the lowest
// whisker bottom, falling back to 0.1 when nothing positive is plotted.
func logFloor(bars []Bar) float64 {
	floor := math.Inf(1)

	for _, b := range bars {
		if math.IsNaN(b.Mean) || b.Mean <= 0 {
			continue
		}

		low := b.Mean
		if !math.IsNaN(b.Std) && b.Mean-b.Std > 0 {
			low = b.Mean - b.Std
		}

		if low < floor {
			floor = low
		}
	}

	if math.IsInf(floor, 1) {
		return 0.1
	}

	return floor / 10
}
