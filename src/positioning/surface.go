package positioning

// StylePatch carries the per-point visual fields the filter engine rewrites
// on one series. Nil slices mean "unchanged".
type StylePatch struct {
	Opacity   []float64
	TextColor []string
	HoverText []string
	X, Y      []*float64
}

// Surface is a render target kept in sync by the coordinator and the filter
// engine: the desktop canvas and the HTML artifact's script both implement
// the same contract.
type Surface interface {
	// SetVisible shows or hides one series.
	SetVisible(series int, visible bool) error
	// Restyle applies a visual patch to one series without changing its
	// point count or order.
	Restyle(series int, patch StylePatch) error
	// Relayout switches axes, title and annotations to a view's layout.
	Relayout(cfg ViewConfig) error
}
