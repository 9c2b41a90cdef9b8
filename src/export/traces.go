// Package export renders a build result into a self-contained HTML map: the
// traces and layouts as embedded JSON, plus a script that replays the filter
// and view-switch behavior in the browser.
package export

import (
	"fmt"
	"strings"

	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

// jsTrace mirrors the subset of a plotly scatter trace the map uses.
type jsTrace struct {
	Type         string      `json:"type"`
	Name         string      `json:"name"`
	X            []*float64  `json:"x"`
	Y            []*float64  `json:"y"`
	Mode         string      `json:"mode"`
	Visible      bool        `json:"visible"`
	ShowLegend   bool        `json:"showlegend"`
	HoverInfo    string      `json:"hoverinfo"`
	HoverText    []string    `json:"hovertext,omitempty"`
	Text         []string    `json:"text,omitempty"`
	TextPosition []string    `json:"textposition,omitempty"`
	TextFont     *jsTextFont `json:"textfont,omitempty"`
	Marker       *jsMarker   `json:"marker,omitempty"`
	Line         *jsLine     `json:"line,omitempty"`
	Opacity      float64     `json:"opacity,omitempty"`
	ConnectGaps  bool        `json:"connectgaps"`
}

type jsTextFont struct {
	Size  int      `json:"size"`
	Color []string `json:"color"`
}

type jsMarker struct {
	Size       []float64     `json:"size"`
	Color      interface{}   `json:"color"`
	Opacity    []float64     `json:"opacity"`
	Symbol     string        `json:"symbol,omitempty"`
	Line       *jsMarkerLine `json:"line,omitempty"`
	ColorScale [][2]any      `json:"colorscale,omitempty"`
	ShowScale  bool          `json:"showscale,omitempty"`
	ColorBar   *jsColorBar   `json:"colorbar,omitempty"`
}

type jsMarkerLine struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

type jsColorBar struct {
	Title string `json:"title"`
}

type jsLine struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// buildTraces converts every series into its plotly form. Trace order equals
// series order, so the embedded point maps index straight into the plot.
func buildTraces(res *positioning.Result) []jsTrace {
	traces := make([]jsTrace, 0, len(res.Series))
	for i := range res.Series {
		s := &res.Series[i]
		if s.IsLine {
			traces = append(traces, jsTrace{
				Type: "scatter", Name: s.Name,
				X: s.X, Y: s.Y,
				Mode:      "lines",
				Visible:   s.Visible,
				HoverInfo: "skip",
				Line:      &jsLine{Width: s.LineWidth, Color: s.Color},
				Opacity:   s.LineOpacity,
			})
			continue
		}
		tr := jsTrace{
			Type: "scatter", Name: s.Name,
			X: s.X, Y: s.Y,
			Mode:       s.Mode,
			Visible:    s.Visible,
			ShowLegend: s.ShowLegend,
			HoverInfo:  "text",
			HoverText:  toHTMLLines(s.HoverText),
			Marker: &jsMarker{
				Size:    s.MarkerSize,
				Color:   s.Color,
				Opacity: s.Opacity,
				Symbol:  s.Symbol,
				Line:    &jsMarkerLine{Width: s.MarkerLine.Width, Color: s.MarkerLine.Color},
			},
		}
		if strings.Contains(s.Mode, "text") {
			tr.Text = toHTMLLines(s.Labels)
			tr.TextPosition = make([]string, len(s.Anchors))
			for p, a := range s.Anchors {
				tr.TextPosition[p] = string(a)
			}
			tr.TextFont = &jsTextFont{Size: s.TextSize, Color: s.TextColor}
		}
		if len(s.ColorValues) > 0 {
			tr.Marker.Color = s.ColorValues
			tr.Marker.ShowScale = true
			tr.Marker.ColorBar = &jsColorBar{Title: s.ColorBarTitle}
			scale := make([][2]any, len(s.ColorScale))
			for p, stop := range s.ColorScale {
				scale[p] = [2]any{stop.Pos, stop.Color}
			}
			tr.Marker.ColorScale = scale
		}
		traces = append(traces, tr)
	}
	return traces
}

// toHTMLLines rewrites newline-joined text into plotly's <br> form. The
// merged-hover separator survives as its <br>-delimited equivalent, which is
// what the embedded filter script splits on.
func toHTMLLines(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ReplaceAll(s, "\n", "<br>")
	}
	return out
}

// htmlHoverSeparator is positioning.HoverSeparator after the newline
// rewrite; the filter script must split merged hovers on exactly this.
func htmlHoverSeparator() string {
	return strings.ReplaceAll(positioning.HoverSeparator, "\n", "<br>")
}

// buildLayout produces the relayout argument map for one view, in plotly's
// dotted-attribute form.
func buildLayout(cfg positioning.ViewConfig) map[string]any {
	yType := "linear"
	if cfg.Y.Log {
		yType = "log"
	}
	layout := map[string]any{
		"title.text":       cfg.Title,
		"xaxis.title.text": cfg.X.Title,
		"xaxis.range":      cfg.X.Range,
		"xaxis.tickformat": cfg.X.TickFormat,
		"yaxis.title.text": cfg.Y.Title,
		"yaxis.type":       yType,
		"yaxis.range":      cfg.Y.Range,
		"yaxis.tickformat": cfg.Y.TickFormat,
		"yaxis.dtick":      nil,
		"xaxis.dtick":      nil,
		"annotations":      buildAnnotations(cfg.Annotations),
	}
	if cfg.X.DTick != 0 {
		layout["xaxis.dtick"] = cfg.X.DTick
	}
	if cfg.Y.DTick != 0 {
		layout["yaxis.dtick"] = cfg.Y.DTick
	}
	return layout
}

func buildAnnotations(anns []positioning.Annotation) []map[string]any {
	out := make([]map[string]any, 0, len(anns))
	for _, a := range anns {
		m := map[string]any{
			"x": a.X, "y": a.Y,
			"text":      a.Text,
			"showarrow": a.ShowArrow,
			"font":      map[string]any{"size": 10, "color": "#666"},
		}
		if a.Paper {
			m["xref"], m["yref"] = "paper", "paper"
		} else {
			m["xref"], m["yref"] = "x", "y"
			m["ax"], m["ay"] = a.AX, a.AY
			m["arrowcolor"] = "#666"
			m["bgcolor"] = "rgba(255,255,255,0.8)"
		}
		out = append(out, m)
	}
	return out
}

// buildVisibility expands the per-view series index lists into full boolean
// arrays over all traces.
func buildVisibility(res *positioning.Result) map[string][]bool {
	out := make(map[string][]bool, len(res.Views))
	for key := range res.Views {
		vis := make([]bool, len(res.Series))
		for _, idx := range res.Visibility[key] {
			vis[idx] = true
		}
		out[string(key)] = vis
	}
	return out
}

// sizeAttrKey names the per-view size attribute for the filter script.
func sizeAttrKey(a positioning.SizeAttr) string {
	if a == positioning.SizeFounded {
		return "size_founded_num"
	}
	return "size_current_num"
}

// intKeyed rewrites an int-keyed map into the string keys JSON objects need.
func intKeyed[V any](in map[int]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[fmt.Sprintf("%d", k)] = v
	}
	return out
}
