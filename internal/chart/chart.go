// Package chart renders the monthly usage and cost chart as a PNG image.
//
// Daily usage is drawn as bars against the left axis, daily cost as a line
// against a second axis on the right. gonum/plot has a single y axis per
// plot, so the cost line and its axis are drawn by this package on top of
// the usage plot's data area.
package chart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/theirongolddev/spotbill/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoDays means there is nothing to draw.
var ErrNoDays = errors.New("chart needs at least one day")

var (
	usageColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	costColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Options controls the image size and text of the chart.
type Options struct {
	WidthPx  int
	HeightPx int
	DPI      int

	Title       string
	UsageLegend string
	CostLegend  string
	XLabel      string
	UsageLabel  string
	CostLabel   string

	// Font sizes in points. Zero means the default.
	TitleSize  float64
	LabelSize  float64
	TickSize   float64
	LegendSize float64
}

// DefaultOptions returns a 1920x1080 chart at 100 DPI with English labels.
func DefaultOptions() Options {
	return Options{
		WidthPx:     1920,
		HeightPx:    1080,
		DPI:         100,
		UsageLegend: "usage",
		CostLegend:  "cost",
		XLabel:      "day",
		UsageLabel:  "kWh",
		CostLabel:   "EUR",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.WidthPx <= 0 {
		o.WidthPx = def.WidthPx
	}
	if o.HeightPx <= 0 {
		o.HeightPx = def.HeightPx
	}
	if o.DPI <= 0 {
		o.DPI = def.DPI
	}
	if o.TitleSize <= 0 {
		o.TitleSize = 18
	}
	if o.LabelSize <= 0 {
		o.LabelSize = 18
	}
	if o.TickSize <= 0 {
		o.TickSize = 14
	}
	if o.LegendSize <= 0 {
		o.LegendSize = 16
	}
	return o
}

// UsageAxisMax returns the top of the usage axis: the largest daily usage
// rounded up to a multiple of 5 kWh.
func UsageAxisMax(days []model.DailyStats) float64 {
	var m float64
	for _, d := range days {
		m = math.Max(m, d.UsageKWh)
	}
	top := math.Ceil(m/5) * 5
	if top <= 0 {
		top = 5
	}
	return top
}

// CostAxisMax returns the top of the cost axis: the largest daily cost
// rounded up to a multiple of 0.2 €.
func CostAxisMax(days []model.DailyStats) float64 {
	var m float64
	for _, d := range days {
		m = math.Max(m, d.Cost)
	}
	top := math.Ceil(m*5) / 5
	if top <= 0 {
		top = 0.2
	}
	return top
}

// Save renders the chart to path, replacing any existing file.
func Save(path string, days []model.DailyStats, opts Options) (err error) {
	f, err := os.Create(path) //nolint:gosec // output path from config or flag
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing chart file: %w", cerr)
		}
	}()

	return Render(f, days, opts)
}

// Render draws the chart for days and writes it to w as PNG.
func Render(w io.Writer, days []model.DailyStats, opts Options) error {
	if len(days) == 0 {
		return ErrNoDays
	}
	opts = opts.withDefaults()

	usage := make(plotter.Values, len(days))
	costs := make([]float64, len(days))
	labels := make([]string, len(days))
	for i, d := range days {
		usage[i] = d.UsageKWh
		costs[i] = d.Cost
		labels[i] = d.Label
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(opts.TitleSize)
	p.Title.Padding = vg.Points(opts.TitleSize / 2)
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.UsageLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = vg.Points(opts.LabelSize)
		ax.Tick.Label.Font.Size = vg.Points(opts.TickSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.WidthPx, opts.HeightPx))
	canvas := vgimg.NewWith(vgimg.UseImage(img), vgimg.UseDPI(opts.DPI))
	full := draw.New(canvas)

	// Sized once the data area is known.
	bars, err := plotter.NewBarChart(usage, vg.Points(1))
	if err != nil {
		return fmt.Errorf("usage bars: %w", err)
	}
	bars.Color = usageColor
	bars.LineStyle.Width = 0

	line := &costLine{
		costs: costs,
		max:   CostAxisMax(days),
		style: draw.LineStyle{Color: costColor, Width: vg.Points(2)},
	}

	p.Add(bars, line)
	p.NominalX(labels...)
	p.X.Min, p.X.Max = daySlots(len(days))
	p.Y.Min = 0
	p.Y.Max = UsageAxisMax(days)

	p.Legend.Add(opts.UsageLegend, bars)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(opts.LegendSize)

	right := newRightAxis(p, opts, line.max)
	area := draw.Crop(full, 0, -right.width(), 0, 0)
	data := p.DataCanvas(area)
	bars.Width = dayBarWidth(data.Max.X-data.Min.X, len(days))
	p.Draw(area)

	right.draw(full, area, data)

	costLegend := plot.NewLegend()
	costLegend.Top = true
	costLegend.Left = false
	costLegend.TextStyle.Font.Size = vg.Points(opts.LegendSize)
	costLegend.Add(opts.CostLegend, line)
	costLegend.Draw(data)

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

// barFill is the share of its slot a day's bar covers.
const barFill = 0.8

// daySlots returns an x range that gives each of n days a unit-wide slot
// centered on its index, keeping the first and last bars off the axes.
func daySlots(n int) (lo, hi float64) {
	return -0.5, float64(n) - 0.5
}

// dayBarWidth returns the bar width for n days in a data area dataWidth wide.
func dayBarWidth(dataWidth vg.Length, n int) vg.Length {
	return dataWidth / vg.Length(n) * barFill
}

// costLine draws daily costs scaled to [0, max] over the full data height.
// It has no DataRange so the usage axis is not stretched by it.
type costLine struct {
	costs []float64
	max   float64
	style draw.LineStyle
}

func (l *costLine) Plot(c draw.Canvas, plt *plot.Plot) {
	pts := make([]vg.Point, len(l.costs))
	for i, v := range l.costs {
		pts[i] = vg.Point{
			X: c.X(plt.X.Norm(float64(i))),
			Y: c.Y(v / l.max),
		}
	}
	c.StrokeLines(l.style, c.ClipLinesXY(pts)...)
}

func (l *costLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(l.style, c.Min.X, y, c.Max.X, y)
}

// rightAxis is the cost axis drawn in the margin right of the usage plot.
type rightAxis struct {
	max     float64
	label   string
	labelSt draw.TextStyle
	tickSt  draw.TextStyle
	lineSt  draw.LineStyle
	tickLen vg.Length
	pad     vg.Length
	ticks   []plot.Tick
}

func newRightAxis(p *plot.Plot, opts Options, top float64) rightAxis {
	tickSt := p.Y.Tick.Label
	tickSt.XAlign = draw.XLeft
	tickSt.YAlign = draw.YCenter

	labelSt := p.Y.Label.TextStyle
	labelSt.Rotation = -math.Pi / 2
	labelSt.XAlign = draw.XCenter
	labelSt.YAlign = draw.YTop

	return rightAxis{
		max:     top,
		label:   opts.CostLabel,
		labelSt: labelSt,
		tickSt:  tickSt,
		lineSt:  p.Y.LineStyle,
		tickLen: p.Y.Tick.Length,
		pad:     p.Y.Label.Padding + vg.Points(4),
		ticks:   plot.DefaultTicks{}.Ticks(0, top),
	}
}

// width is the horizontal space the axis needs: tick marks, the widest
// tick label and the rotated axis label.
func (a rightAxis) width() vg.Length {
	var labels vg.Length
	for _, t := range a.ticks {
		if t.IsMinor() {
			continue
		}
		labels = vg.Length(math.Max(float64(labels), float64(a.tickSt.Width(t.Label))))
	}
	w := a.tickLen + a.pad + labels + a.pad
	if a.label != "" {
		w += a.labelSt.Height(a.label) + a.pad
	}
	return w
}

// draw renders the axis along the right edge of area. Values are placed
// with the vertical scale of data, the usage plot's data canvas.
func (a rightAxis) draw(full, area, data draw.Canvas) {
	x := area.Max.X
	full.StrokeLine2(a.lineSt, x, data.Min.Y, x, data.Max.Y)

	for _, t := range a.ticks {
		if t.Value < 0 || t.Value > a.max {
			continue
		}
		y := data.Y(t.Value / a.max)
		length := a.tickLen
		if t.IsMinor() {
			length /= 2
		}
		full.StrokeLine2(a.lineSt, x, y, x+length, y)
		if !t.IsMinor() {
			full.FillText(a.tickSt, vg.Point{X: x + a.tickLen + a.pad, Y: y}, t.Label)
		}
	}

	if a.label == "" {
		return
	}
	lx := full.Max.X - a.pad
	ly := data.Min.Y + (data.Max.Y-data.Min.Y)/2
	full.FillText(a.labelSt, vg.Point{X: lx, Y: ly}, a.label)
}
