package positioning

import (
	"errors"
	"testing"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// fakeSurface records coordinator calls; optionally fails restyles to check
// that errors are tolerated.
type fakeSurface struct {
	visible    map[int]bool
	relayouts  []ViewKey
	restyles   map[int]int
	failSeries int // restyle on this index errors; -1 disables
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{visible: map[int]bool{}, restyles: map[int]int{}, failSeries: -1}
}

func (f *fakeSurface) SetVisible(series int, visible bool) error {
	f.visible[series] = visible
	return nil
}

func (f *fakeSurface) Restyle(series int, patch StylePatch) error {
	if series == f.failSeries {
		return errors.New("render target gone")
	}
	f.restyles[series]++
	return nil
}

func (f *fakeSurface) Relayout(cfg ViewConfig) error {
	f.relayouts = append(f.relayouts, cfg.Key)
	return nil
}

func coordinatorFixture(t *testing.T) (*dataset.Store, *Result, *fakeSurface, *Coordinator) {
	t.Helper()
	store := buildStore()
	res := Build(store)
	surf := newFakeSurface()
	return store, res, surf, NewCoordinator(store, res, surf)
}

func TestCoordinator_SwitchViewSetsVisibilityAndLayout(t *testing.T) {
	_, res, surf, c := coordinatorFixture(t)

	c.SwitchView(ViewRevenue)
	if c.ActiveView() != ViewRevenue {
		t.Fatalf("active view = %s, want revenue", c.ActiveView())
	}
	if len(surf.relayouts) != 1 || surf.relayouts[0] != ViewRevenue {
		t.Fatalf("relayouts = %v, want [revenue]", surf.relayouts)
	}
	wantVisible := map[int]bool{}
	for _, idx := range res.Visibility[ViewRevenue] {
		wantVisible[idx] = true
	}
	for i := range res.Series {
		if surf.visible[i] != wantVisible[i] {
			t.Fatalf("series %d surface visibility = %v, want %v", i, surf.visible[i], wantVisible[i])
		}
		if res.Series[i].Visible != wantVisible[i] {
			t.Fatalf("series %d model visibility = %v, want %v", i, res.Series[i].Visible, wantVisible[i])
		}
	}
}

func TestCoordinator_SwitchViewPanicsOnUnknownKey(t *testing.T) {
	_, _, _, c := coordinatorFixture(t)
	defer func() {
		if recover() == nil {
			t.Fatal("unknown view key should panic")
		}
	}()
	c.SwitchView(ViewKey("bogus"))
}

func TestCoordinator_FilterPersistsAcrossViewSwitch(t *testing.T) {
	store, res, _, c := coordinatorFixture(t)

	f := DefaultFilter()
	f.International = false
	c.ApplyFilter(f)
	shownBefore, total := c.MatchCounts()
	if total != store.Len() {
		t.Fatalf("total = %d, want %d", total, store.Len())
	}
	if shownBefore >= total {
		t.Fatal("filter should hide the international entity")
	}

	c.SwitchView(ViewOwnership)
	shownAfter, _ := c.MatchCounts()
	if shownAfter != shownBefore {
		t.Fatalf("filter lost across switch: %d then %d", shownBefore, shownAfter)
	}
	// The international entity's points stay hidden on the new view.
	for _, idx := range res.Visibility[ViewOwnership] {
		s := &res.Series[idx]
		for pi, members := range res.PointMaps[idx] {
			for _, id := range members {
				if store.ByID(id).Region == dataset.RegionInternational && len(members) == 1 {
					if s.Opacity[pi] != 0 {
						t.Fatalf("international point still visible after switch")
					}
				}
			}
		}
	}
}

func TestCoordinator_SizeClauseFollowsActiveView(t *testing.T) {
	store, _, _, c := coordinatorFixture(t)
	_ = store

	// On the founding view only Ghibli-like (30 staff) clears 25: the twins
	// and Sparse have no founding size and resolve to the sentinel 10,
	// Overseas started at 20. On the current view everyone but Sparse
	// (no current size, resolves to zero) clears it.
	f := DefaultFilter()
	f.SizeMin = "25"
	c.ApplyFilter(f)
	if shown, _ := c.MatchCounts(); shown != 1 {
		t.Fatalf("founding view shown = %d, want 1", shown)
	}

	c.SwitchView(ViewCurrent)
	if shown, _ := c.MatchCounts(); shown != 4 {
		t.Fatalf("current view shown = %d, want 4", shown)
	}
}

func TestCoordinator_ResetFilterRestoresCounts(t *testing.T) {
	store, _, _, c := coordinatorFixture(t)
	f := DefaultFilter()
	f.Search = "nomatch"
	c.ApplyFilter(f)
	if shown, _ := c.MatchCounts(); shown != 0 {
		t.Fatalf("shown = %d, want 0", shown)
	}
	c.ResetFilter()
	shown, total := c.MatchCounts()
	if shown != total || total != store.Len() {
		t.Fatalf("reset counts = %d/%d, want %d/%d", shown, total, store.Len(), store.Len())
	}
	if !c.Filter().MatchAll() {
		t.Fatal("reset should restore default fields")
	}
}

func TestCoordinator_TrajectoryToggle(t *testing.T) {
	_, res, surf, c := coordinatorFixture(t)
	c.SwitchView(ViewGrowth)
	for _, idx := range res.TrajectoryLines {
		if !res.Series[idx].Visible {
			t.Fatalf("trajectory %d should be visible on the growth view", idx)
		}
	}
	c.SetTrajectories(false)
	for _, idx := range res.TrajectoryLines {
		if res.Series[idx].Visible || surf.visible[idx] {
			t.Fatalf("trajectory %d should be hidden after toggle", idx)
		}
	}
	// Switching away and back respects the toggle.
	c.SwitchView(ViewCurrent)
	c.SwitchView(ViewGrowth)
	for _, idx := range res.TrajectoryLines {
		if res.Series[idx].Visible {
			t.Fatalf("trajectory %d reappeared despite toggle", idx)
		}
	}
}

func TestCoordinator_SurfaceErrorIsTolerated(t *testing.T) {
	store := buildStore()
	res := Build(store)
	surf := newFakeSurface()
	surf.failSeries = 0
	c := NewCoordinator(store, res, surf)

	f := DefaultFilter()
	f.Domestic = false
	c.ApplyFilter(f) // must not panic; failing series is skipped
	if _, total := c.MatchCounts(); total != store.Len() {
		t.Fatal("apply aborted on surface error")
	}
	if surf.restyles[1] == 0 {
		t.Fatal("later series were not restyled after an earlier error")
	}
}
