// Package chart draws heating coefficient curves on log-log axes.
package chart

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/wildstyl3r/dustheat/internal/heating"
)

var ErrNoPoints = errors.New("chart: no positive samples to draw")

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch
)

// positive drops invalid samples and non-positive values, which a log axis cannot show.
func positive(samples []heating.Sample, value func(heating.Sample) float64) plotter.XYs {
	var xys plotter.XYs
	for _, s := range samples {
		if v := value(s); s.Valid && v > 0 {
			xys = append(xys, plotter.XY{X: s.Temperature, Y: v})
		}
	}
	return xys
}

// Coefficient builds the Λ(T) plot with the two channels split out.
func Coefficient(title string, samples []heating.Sample) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "T (K)"
	p.Y.Label.Text = "Λ (erg s^-1 per H)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	series := []struct {
		name  string
		value func(heating.Sample) float64
	}{
		{"total", func(s heating.Sample) float64 { return s.Coefficient }},
		{"collisional", heating.Sample.CollisionalCoefficient},
		{"electron", heating.Sample.ElectronCoefficient},
	}
	drawn := 0
	for i, sr := range series {
		xys := positive(samples, sr.value)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(sr.name, line)
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoPoints
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// Save writes the plot; the format follows the file extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(width, height, path)
}
