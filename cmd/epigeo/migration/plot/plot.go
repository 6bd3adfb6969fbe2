// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to draw
// a migration matrix as a line plot.
package plot

import (
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/migration"
	"github.com/js-arias/epigeo/palette"
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot [--self] [--total] [--color <scheme>]
	[--width <value>] [--height <value>]
	[-o|--output <file>] <matrix-file>`,
	Short: "draw a migration matrix",
	Long: `
Command plot reads a migration matrix, as produced by 'epigeo migration
fixed' or 'epigeo migration calendar', and draws the number of lineages of
each transition through time.

The argument of the command is the name of the matrix file.

By default, transitions within the same location, and transitions without
any lineage, are not drawn. Use the flag --self to draw the transitions
within the same location. Use the flag --total to draw the total number of
lineages at each year as a dashed line.

By default, the colors of the transitions are taken from the rainbow color
scheme. Use the flag --color to define a different scheme; valid values are
"gray", "incandescent", "iridescent", and "rainbow".

By default, the plot will be 8 by 5 inches. Use the flags --width and
--height to change the size (in inches).

By default, the output file is the name of the input file with the ".png"
extension added. Use the flag -o, or --output, to define a different file
name. The extension of the file defines the image format (for example ".svg"
or ".pdf").
	`,
	SetFlags: setFlags,
	Run:      run,
}

var selfFlag bool
var totalFlag bool
var colorFlag string
var width float64
var height float64
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&selfFlag, "self", false, "")
	c.Flags().BoolVar(&totalFlag, "total", false, "")
	c.Flags().StringVar(&colorFlag, "color", "rainbow", "")
	c.Flags().Float64Var(&width, "width", 8, "")
	c.Flags().Float64Var(&height, "height", 5, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting matrix file")
	}
	gradient, err := palette.ByName(colorFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("%v: valid values are %s", err, strings.Join(palette.Names, ", ")))
	}

	m, err := readMatrix(args[0])
	if err != nil {
		return err
	}

	if output == "" {
		output = args[0] + ".png"
	}

	p, err := migrationPlot(m, gradient)
	if err != nil {
		return err
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, output); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}

func readMatrix(name string) (*migration.Matrix, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := migration.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return m, nil
}

type transition struct {
	label  string
	series []float64
}

func migrationPlot(m *migration.Matrix, gradient palette.Gradienter) (*plot.Plot, error) {
	var ts []transition
	for _, f := range m.Locations() {
		for _, t := range m.Locations() {
			if f == t && !selfFlag {
				continue
			}
			s := m.Series(f, t)
			if slices.Max(s) == 0 {
				continue
			}
			ts = append(ts, transition{
				label:  migration.Label(f, t),
				series: s,
			})
		}
	}

	p := plot.New()
	p.X.Label.Text = "year"
	p.Y.Label.Text = "lineages"
	p.Legend.Top = true

	years := m.Years()
	colors := palette.Colors(gradient, len(ts))
	for i, tr := range ts {
		l, err := plotter.NewLine(xys(years, tr.series))
		if err != nil {
			return nil, fmt.Errorf("transition %q: %v", tr.label, err)
		}
		l.LineStyle.Color = colors[i]
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(tr.label, l)
	}

	if totalFlag {
		l, err := plotter.NewLine(xys(years, m.Totals()))
		if err != nil {
			return nil, fmt.Errorf("total lineages: %v", err)
		}
		l.LineStyle = plotter.DefaultLineStyle
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("total", l)
	}
	return p, nil
}

func xys(years []int, v []float64) plotter.XYs {
	pts := make(plotter.XYs, len(years))
	for i, y := range years {
		pts[i].X = float64(y)
		pts[i].Y = v[i]
	}
	return pts
}
