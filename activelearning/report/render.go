package report

import (
	"io"

	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/PAL-UH/active-learning/golib/fileutil"
	"github.com/spf13/afero"
	chart "github.com/wcharczuk/go-chart"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Renderer draws a Chart as a PNG image.
type Renderer interface {
	Render(w io.Writer, c Chart) error
}

// NewRenderer returns a renderer by name. The empty name selects GoChart.
func NewRenderer(name string) (Renderer, error) {
	switch name {
	case "", "gochart":
		return GoChart{}, nil
	case "gonum":
		return GonumPlot{Width: 6 * vg.Inch, Height: 4 * vg.Inch}, nil
	default:
		return nil, errors.Configf("unknown chart renderer %q", name)
	}
}

// GoChart renders with github.com/wcharczuk/go-chart.
type GoChart struct{}

// Render implements Renderer.
func (GoChart) Render(w io.Writer, c Chart) error {
	var series []chart.Series
	for i, s := range c.Series {
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				Show:        true,
				StrokeColor: chart.GetAlternateColor(i),
			},
		})
	}

	xmin, xmax := c.xRange()
	graph := chart.Chart{
		Title:      c.Title,
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      c.XLabel,
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			Range:     &chart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: chart.YAxis{
			Name:      c.YLabel,
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: series,
	}
	if c.YMin != c.YMax {
		graph.YAxis.Range = &chart.ContinuousRange{Min: c.YMin, Max: c.YMax}
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	return errors.WrapfOrNil(graph.Render(chart.PNG, w), "rendering %q", c.Title)
}

// GonumPlot renders with gonum.org/v1/plot.
type GonumPlot struct {
	Width, Height vg.Length
}

// Render implements Renderer.
func (g GonumPlot) Render(w io.Writer, c Chart) error {
	p, err := plot.New()
	if err != nil {
		return errors.Wrapf(err, "creating plot")
	}
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range c.Series {
		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X = s.X[j]
			xys[j].Y = s.Y[j]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return errors.Wrapf(err, "series %q", s.Name)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	p.X.Min, p.X.Max = c.xRange()
	if c.YMin != c.YMax {
		p.Y.Min, p.Y.Max = c.YMin, c.YMax
	}

	wt, err := p.WriterTo(g.Width, g.Height, "png")
	if err != nil {
		return errors.Wrapf(err, "rendering %q", c.Title)
	}
	_, err = wt.WriteTo(w)
	return errors.WrapfOrNil(err, "writing %q", c.Title)
}

// WriteChart renders c to path on fs, creating parent directories. Nothing
// is left at path if rendering fails.
func WriteChart(fs afero.Fs, path string, r Renderer, c Chart) (err error) {
	f, err := fileutil.NewBufferedWriter(fs, path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fs.Remove(path)
		}
	}()
	defer errors.Defer(&err, f.Close)

	return r.Render(f, c)
}
