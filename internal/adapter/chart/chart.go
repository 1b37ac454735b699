package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

var printer = message.NewPrinter(language.English)

// newPlot creates a panel with the shared background, grid, and labels.
func newPlot(t Theme, title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = t.Background
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// writePNG lays out a grid of panels on one canvas and encodes it as PNG.
// Nil panels are left blank.
func writePNG(w io.Writer, t Theme, width, height vg.Length, panels [][]*plot.Plot) error {
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(t.DPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      len(panels[0]),
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 3,
		PadBottom: vg.Millimeter * 3,
		PadLeft:   vg.Millimeter * 3,
		PadRight:  vg.Millimeter * 3,
	}

	canvases := plot.Align(panels, tiles, dc)
	for j := range panels {
		for i := range panels[j] {
			if panels[j][i] != nil {
				panels[j][i].Draw(canvases[j][i])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// timeXYs converts dated points to plot coordinates in Unix seconds.
func timeXYs(points []domain.SeriesPoint) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Value
	}
	return xys
}

// countryLines adds one line per focus country with at least one point and
// returns the x span covered. Countries without points are skipped.
func countryLines(p *plot.Plot, t Theme, rep domain.Report, width vg.Length, pick func(domain.Row) float64) (span [2]float64, err error) {
	span = [2]float64{math.Inf(1), math.Inf(-1)}
	for _, country := range rep.Focus.Names() {
		points := domain.Series(rep.Rows, country, pick)
		if len(points) == 0 {
			continue
		}
		line, err := plotter.NewLine(timeXYs(points))
		if err != nil {
			return span, fmt.Errorf("%s line: %w", country, err)
		}
		line.Color = t.ColorFor(rep.Focus, country)
		line.Width = width
		p.Add(line)
		p.Legend.Add(country, line)

		span[0] = math.Min(span[0], float64(points[0].Date.Unix()))
		span[1] = math.Max(span[1], float64(points[len(points)-1].Date.Unix()))
	}
	if span[0] > span[1] {
		span = rowSpan(rep.Rows)
	}
	return span, nil
}

// rowSpan is the date range of all prepared rows, or [0, 1] when there are none.
func rowSpan(rows []domain.Row) [2]float64 {
	if len(rows) == 0 {
		return [2]float64{0, 1}
	}
	lo, hi := rows[0].Date, rows[0].Date
	for i := range rows {
		if rows[i].Date.Before(lo) {
			lo = rows[i].Date
		}
		if rows[i].Date.After(hi) {
			hi = rows[i].Date
		}
	}
	return [2]float64{float64(lo.Unix()), float64(hi.Unix())}
}

// referenceLine adds a dashed horizontal line at y across span, with a legend entry.
func referenceLine(p *plot.Plot, y float64, span [2]float64, c color.Color, label string) error {
	line, err := plotter.NewLine(plotter.XYs{{X: span[0], Y: y}, {X: span[1], Y: y}})
	if err != nil {
		return fmt.Errorf("reference line: %w", err)
	}
	line.Color = c
	line.Width = vg.Points(1.2)
	line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func timeAxis(p *plot.Plot) {
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 2006"}
}

// groupedTicks labels the default ticks with thousands separators.
var groupedTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = printer.Sprintf("%.0f", ticks[i].Value)
		}
	}
	return ticks
})

func legendTopLeft(p *plot.Plot) {
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(9)
}
