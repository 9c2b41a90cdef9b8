package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

// Chart gutters. The pixel mapping for labels and hover lookup reuses these,
// so they must match the Background padding handed to go-chart.
const (
	padTop    = 40
	padLeft   = 60
	padRight  = 30
	padBottom = 50
)

// renderedPoint is one plotted marker in image pixel space, kept for the
// proximity-hover overlay.
type renderedPoint struct {
	seriesIdx int
	pointIdx  int
	px, py    float64
	hover     string
}

// axisMapper converts data coordinates into image pixels for one rendered
// frame.
type axisMapper struct {
	xMin, xMax float64
	yMin, yMax float64
	logY       bool
	width      int
	height     int
}

func newAxisMapper(cfg positioning.ViewConfig, logY bool, width, height int) axisMapper {
	m := axisMapper{
		xMin: cfg.X.Range[0], xMax: cfg.X.Range[1],
		logY: cfg.Y.Log && logY, width: width, height: height,
	}
	if m.logY {
		m.yMin, m.yMax = cfg.Y.Range[0], cfg.Y.Range[1]
	} else if cfg.Y.Log {
		m.yMin, m.yMax = cfg.YLinearRange[0], cfg.YLinearRange[1]
	} else {
		m.yMin, m.yMax = cfg.Y.Range[0], cfg.Y.Range[1]
	}
	return m
}

// yValue transforms a data y into axis units (log10 when the axis is log).
func (m axisMapper) yValue(y float64) float64 {
	if !m.logY {
		return y
	}
	if y <= 0 {
		return m.yMin
	}
	return math.Log10(y)
}

func (m axisMapper) toPixel(x, y float64) (float64, float64) {
	plotW := float64(m.width - padLeft - padRight)
	plotH := float64(m.height - padTop - padBottom)
	px := float64(padLeft) + (x-m.xMin)/(m.xMax-m.xMin)*plotW
	py := float64(m.height-padBottom) - (m.yValue(y)-m.yMin)/(m.yMax-m.yMin)*plotH
	return px, py
}

// renderMap draws the active view: the axis frame via go-chart, every
// visible series as styled dots or trajectory segments, then the resolved
// labels with basicfont. Returns the frame plus the plotted points for the
// hover overlay.
func renderMap(res *positioning.Result, cfg positioning.ViewConfig, logY bool, width, height int) (image.Image, []renderedPoint) {
	mapper := newAxisMapper(cfg, logY, width, height)

	series := make([]chart.Series, 0, len(res.Series))
	for idx := range res.Series {
		s := &res.Series[idx]
		if !s.Visible {
			continue
		}
		if s.IsLine {
			series = append(series, lineSegments(s, mapper)...)
			continue
		}
		series = append(series, markerSeries(s, mapper))
	}
	if len(series) == 0 {
		return blank(width, height), nil
	}

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: padTop, Left: padLeft, Right: padRight, Bottom: padBottom}},
		XAxis: chart.XAxis{
			Name:  cfg.X.Title,
			Range: &chart.ContinuousRange{Min: mapper.xMin, Max: mapper.xMax},
			Ticks: xTicks(cfg),
		},
		YAxis: chart.YAxis{
			Name:  cfg.Y.Title,
			Range: &chart.ContinuousRange{Min: mapper.yMin, Max: mapper.yMax},
			Ticks: yTicks(cfg, mapper),
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		fmt.Printf("[viewer] map render error: %v; showing blank fallback\n", err)
		return blank(width, height), nil
	}
	img, err := png.Decode(&buf)
	if err != nil {
		fmt.Printf("[viewer] map decode error: %v; showing blank fallback\n", err)
		return blank(width, height), nil
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, img.Bounds(), img, img.Bounds().Min, draw.Src)

	var points []renderedPoint
	for idx := range res.Series {
		s := &res.Series[idx]
		if !s.Visible || s.IsLine {
			continue
		}
		for p := range s.X {
			if s.Opacity[p] <= 0 {
				continue
			}
			px, py := mapper.toPixel(*s.X[p], *s.Y[p])
			points = append(points, renderedPoint{
				seriesIdx: idx, pointIdx: p,
				px: px, py: py,
				hover: s.HoverText[p],
			})
			if s.Labels != nil && s.Labels[p] != "" && !isHiddenColor(s.TextColor[p]) {
				drawLabel(rgba, s.Labels[p], s.Anchors[p], px, py, s.MarkerSize[p], parseColor(s.TextColor[p]))
			}
		}
	}
	return rgba, points
}

// markerSeries feeds one positioning series to go-chart with per-point dot
// sizes and per-point alpha via style providers.
func markerSeries(s *positioning.Series, mapper axisMapper) chart.Series {
	xs := make([]float64, len(s.X))
	ys := make([]float64, len(s.Y))
	for p := range s.X {
		xs[p] = *s.X[p]
		ys[p] = mapper.yValue(*s.Y[p])
	}
	base := parseColor(s.Color)
	sizes := s.MarkerSize
	opacities := s.Opacity
	values := s.ColorValues
	scale := s.ColorScale
	return chart.ContinuousSeries{
		Name:    s.Name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    5,
			DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
				return sizes[index] / 2
			},
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				c := base
				if index < len(values) && len(scale) > 0 {
					c = scaleColor(scale, values[index])
				}
				c.A = uint8(float64(255) * opacities[index])
				return c
			},
		},
	}
}

// lineSegments splits one trajectory trace into per-entity two-point series,
// dropping entities whose endpoints the filter nulled out.
func lineSegments(s *positioning.Series, mapper axisMapper) []chart.Series {
	c := parseColor(s.Color)
	c.A = uint8(255 * s.LineOpacity)
	var out []chart.Series
	for p := 0; p+1 < len(s.X); p += 3 {
		if s.X[p] == nil || s.X[p+1] == nil {
			continue
		}
		out = append(out, chart.ContinuousSeries{
			XValues: []float64{*s.X[p], *s.X[p+1]},
			YValues: []float64{mapper.yValue(*s.Y[p]), mapper.yValue(*s.Y[p+1])},
			Style: chart.Style{
				StrokeWidth: s.LineWidth,
				StrokeColor: c,
			},
		})
	}
	return out
}

// drawLabel renders a point label with the 7x13 face, offset by its anchor.
// Merged labels arrive newline-joined and draw as stacked lines.
func drawLabel(dst *image.RGBA, label string, anchor positioning.Anchor, px, py, markerSize float64, col drawing.Color) {
	face := basicfont.Face7x13
	lines := strings.Split(label, "\n")
	lineH := face.Metrics().Height.Ceil()
	textCol := image.NewUniform(color.RGBA{R: col.R, G: col.G, B: col.B, A: col.A})
	dr := &font.Drawer{Dst: dst, Src: textCol, Face: face}

	widest := 0
	for _, l := range lines {
		if w := dr.MeasureString(l).Ceil(); w > widest {
			widest = w
		}
	}

	gap := markerSize/2 + 3
	var x, y float64
	switch {
	case strings.HasSuffix(string(anchor), "right"):
		x = px + gap
	case strings.HasSuffix(string(anchor), "left"):
		x = px - gap - float64(widest)
	default: // center
		x = px - float64(widest)/2
	}
	switch {
	case strings.HasPrefix(string(anchor), "top"):
		y = py - gap - float64(lineH*(len(lines)-1))
	case strings.HasPrefix(string(anchor), "bottom"):
		y = py + gap + float64(lineH)
	default: // middle
		y = py + float64(lineH)/2 - 2 - float64(lineH*(len(lines)-1))/2
	}

	for i, l := range lines {
		dr.Dot = fixed.Point26_6{X: fixed.I(int(x)), Y: fixed.I(int(y) + i*lineH)}
		dr.DrawString(l)
	}
}

func xTicks(cfg positioning.ViewConfig) []chart.Tick {
	if cfg.X.DTick == 0 {
		return nil
	}
	return makeTicks(cfg.X.Range[0], cfg.X.Range[1], cfg.X.DTick, cfg.X.TickFormat)
}

// yTicks emits decade ticks on log axes and stepped ticks otherwise.
func yTicks(cfg positioning.ViewConfig, m axisMapper) []chart.Tick {
	if m.logY {
		var ticks []chart.Tick
		for e := math.Ceil(m.yMin); e <= m.yMax; e++ {
			ticks = append(ticks, chart.Tick{Value: e, Label: formatTick(cfg.Y.TickFormat, math.Pow(10, e))})
		}
		return ticks
	}
	step := cfg.Y.DTick
	if step == 0 {
		step = (m.yMax - m.yMin) / 6
	}
	return makeTicks(m.yMin, m.yMax, step, cfg.Y.TickFormat)
}

func makeTicks(min, max, step float64, format string) []chart.Tick {
	var ticks []chart.Tick
	start := math.Ceil(min/step) * step
	for v := start; v <= max+step/1e6; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(format, v)})
	}
	return ticks
}

func formatTick(format string, v float64) string {
	switch format {
	case ".0%":
		return fmt.Sprintf("%.0f%%", v*100)
	case ".1f":
		return fmt.Sprintf("%.1f", v)
	case "d":
		return fmt.Sprintf("%.0f", v)
	default: // ",d" and friends
		return groupDigits(int64(math.Round(v)))
	}
}

// groupDigits renders 12345 as 12,345.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// scaleColor interpolates a continuous color scale at v. Values outside the
// stop range clamp to the nearest end.
func scaleColor(stops []positioning.ColorStop, v float64) drawing.Color {
	if v <= stops[0].Pos {
		return parseColor(stops[0].Color)
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if v > hi.Pos {
			continue
		}
		if hi.Pos == lo.Pos {
			return parseColor(hi.Color)
		}
		return lerpColor(parseColor(lo.Color), parseColor(hi.Color), (v-lo.Pos)/(hi.Pos-lo.Pos))
	}
	return parseColor(stops[len(stops)-1].Color)
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// parseColor understands the two color forms the build result uses: #RRGGBB
// hex and rgba(r,g,b,a).
func parseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return drawing.Color{R: r, G: g, B: b, A: 255}
		}
	}
	if strings.HasPrefix(s, "rgba(") {
		var r, g, b int
		var a float64
		if _, err := fmt.Sscanf(s, "rgba(%d,%d,%d,%f)", &r, &g, &b, &a); err == nil {
			return drawing.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a * 255)}
		}
	}
	return drawing.Color{R: 68, G: 68, B: 68, A: 255}
}

// isHiddenColor reports the transparent text color the filter writes;
// labels so colored are skipped instead of drawn fully transparent.
func isHiddenColor(s string) bool {
	return s == "rgba(0,0,0,0)"
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	return img
}
