package main

import (
	"image/color"
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/murasaqi/anime-studio-positioning-map/src/positioning"
)

// hoverThresholdPx is the radius, in image pixels, within which nearby
// points join the hover readout.
const hoverThresholdPx = 50.0

// hoverOverlay sits on top of the map image and shows the hover text of
// every point near the cursor, so stacked or adjacent markers are all
// readable at once.
type hoverOverlay struct {
	widget.BaseWidget
	state    *uiState
	mouse    fyne.Position
	hovering bool
	// updating guards against re-entrant refreshes while the readout is
	// being rebuilt.
	updating bool
}

func newHoverOverlay(state *uiState) *hoverOverlay {
	h := &hoverOverlay{state: state}
	h.ExtendBaseWidget(h)
	return h
}

var _ desktop.Hoverable = (*hoverOverlay)(nil)

func (h *hoverOverlay) MouseIn(ev *desktop.MouseEvent) {
	h.hovering = true
	h.mouse = ev.Position
	h.Refresh()
}

func (h *hoverOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if h.updating {
		return
	}
	h.updating = true
	h.mouse = ev.Position
	h.Refresh()
	h.updating = false
}

func (h *hoverOverlay) MouseOut() {
	h.hovering = false
	h.Refresh()
}

func (h *hoverOverlay) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{})
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 190})
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	return &hoverRenderer{
		h: h, bg: bg, labelBG: labelBG, label: label,
		objs: []fyne.CanvasObject{bg, labelBG, label},
	}
}

type hoverRenderer struct {
	h       *hoverOverlay
	bg      *canvas.Rectangle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *hoverRenderer) Destroy()                     {}
func (r *hoverRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *hoverRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *hoverRenderer) Refresh()                     { r.Layout(r.h.Size()) }

func (r *hoverRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))

	if !r.h.hovering {
		r.hide()
		return
	}

	// Contain-fit mapping from overlay coordinates to image pixels.
	imgW, imgH := float32(chartWidth), float32(chartHeight)
	sx := size.Width / imgW
	sy := size.Height / imgH
	scale := sx
	if sy < sx {
		scale = sy
	}
	drawW := imgW * scale
	drawH := imgH * scale
	drawX := (size.Width - drawW) / 2
	drawY := (size.Height - drawH) / 2

	mx := r.h.mouse.X
	my := r.h.mouse.Y
	if mx < drawX || mx > drawX+drawW || my < drawY || my > drawY+drawH || scale <= 0 {
		r.hide()
		return
	}
	px := float64((mx - drawX) / scale)
	py := float64((my - drawY) / scale)

	texts := nearbyHovers(r.h.state.points, px, py, hoverThresholdPx)
	if len(texts) == 0 {
		r.hide()
		return
	}

	segments := make([]widget.RichTextSegment, 0, len(texts))
	for i, t := range texts {
		if i > 0 {
			segments = append(segments, &widget.TextSegment{
				Text:  strings.Trim(positioning.HoverSeparator, "\n"),
				Style: widget.RichTextStyle{ColorName: "disabled"},
			})
		}
		segments = append(segments, &widget.TextSegment{Text: t})
	}
	r.label.Segments = segments
	r.label.Refresh()

	min := r.label.MinSize()
	lx := mx + 14
	ly := my + 10
	if lx+min.Width > size.Width {
		lx = size.Width - min.Width
	}
	if ly+min.Height > size.Height {
		ly = size.Height - min.Height
	}
	r.label.Move(fyne.NewPos(lx, ly))
	r.label.Resize(min)
	r.labelBG.Move(fyne.NewPos(lx, ly))
	r.labelBG.Resize(min)
}

func (r *hoverRenderer) hide() {
	r.label.Move(fyne.NewPos(-10000, -10000))
	r.labelBG.Move(fyne.NewPos(-10000, -10000))
	r.labelBG.Resize(fyne.NewSize(0, 0))
}

// nearbyHovers collects the hover texts of every rendered point within the
// threshold of (px, py), nearest first, capped to keep the readout scannable.
func nearbyHovers(points []renderedPoint, px, py, threshold float64) []string {
	type hit struct {
		dist float64
		text string
	}
	var hits []hit
	for _, p := range points {
		if p.hover == "" {
			continue
		}
		d := math.Hypot(p.px-px, p.py-py)
		if d <= threshold {
			hits = append(hits, hit{d, p.hover})
		}
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].dist < hits[j-1].dist; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	if len(hits) > 4 {
		hits = hits[:4]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.text
	}
	return out
}
