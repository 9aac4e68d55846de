// Package report renders training history as images.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("report: no data")

// Stage is one contiguous block of epoch losses.
type Stage struct {
	Name   string
	Losses []float64
}

// LossCurve plots the per-epoch loss of every stage on a shared epoch axis,
// one colored line per stage.
func LossCurve(title string, stages []Stage) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "mse"
	p.Add(plotter.NewGrid())

	epoch := 0
	points := 0
	for i, s := range stages {
		if len(s.Losses) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Losses))
		for j, l := range s.Losses {
			epoch++
			xys[j].X = float64(epoch)
			xys[j].Y = l
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
		points += len(xys)
	}
	if points == 0 {
		return nil, ErrNoData
	}
	return p, nil
}

// WritePNG renders p as a width×height PNG into w.
func WritePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveLossCurve writes the loss curve of stages to a PNG file.
func SaveLossCurve(path, title string, stages []Stage) error {
	p, err := LossCurve(title, stages)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot: %w", err)
	}
	if err := WritePNG(f, p, 8*vg.Inch, 4*vg.Inch); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render plot: %w", err)
	}
	return f.Close()
}
