package positioning

import (
	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// Coordinator owns the two pieces of interaction state, the active view and
// the current filter, and keeps them consistent: a filter stays applied
// across view switches and is re-evaluated under the new view's size
// attribute.
type Coordinator struct {
	store   *dataset.Store
	res     *Result
	eng     *Engine
	surface Surface

	active       ViewKey
	fields       FilterFields
	trajectories bool

	shown, total int
}

// NewCoordinator starts on the first view with the all-pass filter.
func NewCoordinator(store *dataset.Store, res *Result, surface Surface) *Coordinator {
	return &Coordinator{
		store:        store,
		res:          res,
		eng:          NewEngine(store, res),
		surface:      surface,
		active:       ViewOrder[0],
		fields:       DefaultFilter(),
		trajectories: true,
		shown:        store.Len(),
		total:        store.Len(),
	}
}

func (c *Coordinator) ActiveView() ViewKey      { return c.active }
func (c *Coordinator) ActiveConfig() ViewConfig { return c.res.Config(c.active) }
func (c *Coordinator) Filter() FilterFields     { return c.fields }

// MatchCounts reports how many entities the current filter shows out of the
// store total.
func (c *Coordinator) MatchCounts() (shown, total int) { return c.shown, c.total }

// SwitchView activates a view: series visibility, layout, then the held
// filter re-applied so the numeric clause reads the new view's size
// attribute. Panics on a key outside the fixed view set.
func (c *Coordinator) SwitchView(key ViewKey) {
	cfg := c.res.Config(key)
	c.active = key

	visible := map[int]bool{}
	for _, idx := range c.res.Visibility[key] {
		visible[idx] = true
	}
	if !c.trajectories {
		for _, idx := range c.res.TrajectoryLines {
			visible[idx] = false
		}
	}
	for i := range c.res.Series {
		c.res.Series[i].Visible = visible[i]
		if c.surface != nil {
			if err := c.surface.SetVisible(i, visible[i]); err != nil {
				dataset.Errorf("set series %d visibility: %v", i, err)
			}
		}
	}
	if c.surface != nil {
		if err := c.surface.Relayout(cfg); err != nil {
			dataset.Errorf("relayout for view %s: %v", key, err)
		}
	}
	c.reapply()
}

// SetTrajectories toggles the growth-trajectory line traces independently of
// the view's other series.
func (c *Coordinator) SetTrajectories(show bool) {
	c.trajectories = show
	onGrowth := c.active == ViewGrowth
	for _, idx := range c.res.TrajectoryLines {
		v := show && onGrowth
		c.res.Series[idx].Visible = v
		if c.surface != nil {
			if err := c.surface.SetVisible(idx, v); err != nil {
				dataset.Errorf("set trajectory %d visibility: %v", idx, err)
			}
		}
	}
}

// ApplyFilter stores and applies new filter fields under the active view.
func (c *Coordinator) ApplyFilter(f FilterFields) {
	c.fields = f
	c.reapply()
}

// ResetFilter returns the filter bar to its defaults and restores every
// series' pristine arrays.
func (c *Coordinator) ResetFilter() {
	c.fields = DefaultFilter()
	c.eng.Reset(c.surface)
	c.shown = c.total
}

func (c *Coordinator) reapply() {
	if c.fields.MatchAll() {
		c.eng.Reset(c.surface)
		c.shown = c.total
		return
	}
	c.shown = c.eng.Apply(c.fields.Compile(), c.ActiveConfig().SizeAttr, c.surface)
	dataset.Debugf("filter shows %d/%d entities on view %s", c.shown, c.total, c.active)
}

// Matches evaluates the current filter against one entity under the active
// view, for surfaces that render their own entity lists.
func (c *Coordinator) Matches(e *dataset.Entity) bool {
	if c.fields.MatchAll() {
		return true
	}
	return c.fields.Compile().Matches(e, c.ActiveConfig().SizeAttr)
}
