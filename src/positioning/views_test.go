package positioning

import (
	"math"
	"strings"
	"testing"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// buildStore is a compact fixture spanning the interesting corners: a merged
// pair, a growing studio, an international studio with revenue data and a
// sparse studio with almost nothing filled in.
func buildStore() *dataset.Store {
	return dataset.NewStore([]dataset.Entity{
		{
			Name: "Ghibli-like", Region: dataset.RegionDomestic, Founded: ip(1985),
			SizeFounded: fp(30), SizeCurrent: fp(100),
			OriginalScore: fp(0.9), OriginalScoreFounded: fp(0.7),
			IPOwnershipScore: fp(0.8), BusinessModel: "original",
			OwnershipType: "independent", YearsToProfitability: ip(3),
		},
		{
			Name: "Twin A", Region: dataset.RegionDomestic, Founded: ip(2000),
			SizeCurrent: fp(50), OriginalScore: fp(0.5),
			AIAdoptionLevel: "experimental",
		},
		{
			Name: "Twin B", Region: dataset.RegionDomestic, Founded: ip(2005),
			SizeCurrent: fp(50), OriginalScore: fp(0.5),
		},
		{
			Name: "Overseas", Region: dataset.RegionInternational, Founded: ip(2015),
			SizeFounded: fp(20), SizeCurrent: fp(800),
			OriginalScore: fp(0.3), RevenueBillionYen: fp(120),
			OperatingMargin: fp(0.18), LicensingRatio: fp(0.6),
			PrimaryPlatform: []string{"Netflix"},
		},
		{Name: "Sparse"},
	})
}

func markerIndices(res *Result, view ViewKey) []int {
	var out []int
	for _, idx := range res.Visibility[view] {
		if !res.Series[idx].IsLine {
			out = append(out, idx)
		}
	}
	return out
}

func TestBuild_EveryViewCoversEveryEntity(t *testing.T) {
	store := buildStore()
	res := Build(store)
	for _, view := range ViewOrder {
		covered := map[int]bool{}
		for _, idx := range markerIndices(res, view) {
			for _, members := range res.PointMaps[idx] {
				if len(members) == 0 {
					t.Fatalf("view %s: series %d has a point with empty provenance", view, idx)
				}
				for _, id := range members {
					covered[id] = true
				}
			}
		}
		for id := 0; id < store.Len(); id++ {
			if !covered[id] {
				t.Fatalf("view %s does not cover entity %d (%s)", view, id, store.ByID(id).Name)
			}
		}
	}
}

func TestBuild_InitialVisibilityIsFirstView(t *testing.T) {
	res := Build(buildStore())
	wantVisible := map[int]bool{}
	for _, idx := range res.Visibility[ViewOrder[0]] {
		wantVisible[idx] = true
	}
	for i := range res.Series {
		if res.Series[i].Visible != wantVisible[i] {
			t.Fatalf("series %d (%s/%s): visible = %v, want %v",
				i, res.Series[i].ViewKey, res.Series[i].Name, res.Series[i].Visible, wantVisible[i])
		}
	}
}

func TestBuild_MergedPointProvenanceAndHover(t *testing.T) {
	store := buildStore()
	res := Build(store)
	// Twin A and Twin B share (0.5, 50) on the current view.
	var found bool
	for _, idx := range markerIndices(res, ViewCurrent) {
		s := &res.Series[idx]
		for p, members := range res.PointMaps[idx] {
			if len(members) == 2 {
				found = true
				if members[0] != 1 || members[1] != 2 {
					t.Fatalf("merged members = %v, want [1 2]", members)
				}
				if got := s.Labels[p]; got != "Twin A"+LabelSeparator+"Twin B" {
					t.Fatalf("merged label = %q", got)
				}
				hover := s.HoverText[p]
				if !strings.Contains(hover, HoverSeparator) {
					t.Fatalf("merged hover lacks separator:\n%s", hover)
				}
				if !strings.Contains(hover, "Twin A") || !strings.Contains(hover, "Twin B") {
					t.Fatalf("merged hover missing a member:\n%s", hover)
				}
			}
		}
	}
	if !found {
		t.Fatal("no merged point found on the current view")
	}
}

func TestBuild_GrowthTrajectoryStructure(t *testing.T) {
	res := Build(buildStore())
	if len(res.TrajectoryLines) == 0 {
		t.Fatal("no trajectory line series built")
	}
	// Two growth entities, one per region, each region gets a full gradient.
	if len(res.TrajectoryLines) != 2*gradientSteps {
		t.Fatalf("trajectory series count = %d, want %d", len(res.TrajectoryLines), 2*gradientSteps)
	}
	for _, idx := range res.TrajectoryLines {
		s := &res.Series[idx]
		if !s.IsLine || s.ViewKey != ViewGrowth {
			t.Fatalf("series %d tagged as trajectory but IsLine=%v view=%s", idx, s.IsLine, s.ViewKey)
		}
		ids := res.LineGroups[idx]
		if len(s.X) != 3*len(ids) {
			t.Fatalf("series %d: %d coordinates for %d entities, want triplets", idx, len(s.X), len(ids))
		}
		for si := range ids {
			if s.X[si*3] == nil || s.X[si*3+1] == nil || s.X[si*3+2] != nil {
				t.Fatalf("series %d entity %d: expected (x0, x1, gap) triplet", idx, si)
			}
		}
	}
	// Gradient endpoints: the final step is near-opaque and widest.
	first := &res.Series[res.TrajectoryLines[0]]
	last := &res.Series[res.TrajectoryLines[gradientSteps-1]]
	if first.LineOpacity >= last.LineOpacity {
		t.Fatalf("gradient opacity not increasing: %v then %v", first.LineOpacity, last.LineOpacity)
	}
	wantLast := 0.08 + 0.77*1*1
	if math.Abs(last.LineOpacity-wantLast) > 1e-9 {
		t.Fatalf("final step opacity = %v, want %v", last.LineOpacity, wantLast)
	}
	if math.Abs(last.LineWidth-4.0) > 1e-9 {
		t.Fatalf("final step width = %v, want 4.0", last.LineWidth)
	}
}

func TestBuild_BusinessModelSizeScaling(t *testing.T) {
	store := dataset.NewStore([]dataset.Entity{
		{Name: "Big", OriginalScore: fp(0.5), IPOwnershipScore: fp(0.5),
			BusinessModel: "original", SizeCurrent: fp(100000)},
		{Name: "Tiny", OriginalScore: fp(0.2), IPOwnershipScore: fp(0.2),
			BusinessModel: "commission", SizeCurrent: fp(1)},
		{Name: "NoSize", OriginalScore: fp(0.8), IPOwnershipScore: fp(0.8),
			BusinessModel: "ip_holding"},
	})
	res := Build(store)
	sizes := map[string]float64{}
	for _, idx := range markerIndices(res, ViewBusinessModel) {
		s := &res.Series[idx]
		for p, members := range res.PointMaps[idx] {
			sizes[store.ByID(members[0]).Name] = s.MarkerSize[p]
		}
	}
	if sizes["Big"] != 30 {
		t.Fatalf("large studio marker = %v, want clamp at 30", sizes["Big"])
	}
	if sizes["Tiny"] != 6 {
		t.Fatalf("tiny studio marker = %v, want floor 6", sizes["Tiny"])
	}
	if sizes["NoSize"] != 8 {
		t.Fatalf("sizeless studio marker = %v, want fallback 8", sizes["NoSize"])
	}
}

func TestBuild_RevenueViewSplitsByDisclosure(t *testing.T) {
	store := buildStore()
	res := Build(store)
	var public, noData *Series
	for _, idx := range markerIndices(res, ViewRevenue) {
		s := &res.Series[idx]
		switch s.CategoryKey {
		case "no_data":
			noData = s
		default:
			public = s
		}
	}
	if public == nil || noData == nil {
		t.Fatal("revenue view should carry a public series and a no-data series")
	}
	if public.Points() != 1 {
		t.Fatalf("public revenue points = %d, want 1", public.Points())
	}
	if len(public.ColorValues) != 1 || public.ColorValues[0] != 0.6 {
		t.Fatalf("licensing-ratio color values = %v, want [0.6]", public.ColorValues)
	}
	if len(public.ColorScale) == 0 {
		t.Fatal("public revenue series missing its color scale")
	}
	if noData.Points() == 0 || noData.Color != colorNoData {
		t.Fatalf("no-data series malformed: %d points, color %q", noData.Points(), noData.Color)
	}
}

func TestBuild_AIAdoptionSymbolsByRegion(t *testing.T) {
	res := Build(buildStore())
	for _, idx := range markerIndices(res, ViewAIAdoption) {
		s := &res.Series[idx]
		switch {
		case strings.HasPrefix(s.Name, "Domestic") && s.Symbol != "circle":
			t.Fatalf("domestic series %q symbol = %q, want circle", s.Name, s.Symbol)
		case strings.HasPrefix(s.Name, "International") && s.Symbol != "diamond":
			t.Fatalf("international series %q symbol = %q, want diamond", s.Name, s.Symbol)
		}
	}
}

func TestBuild_ProfitabilityViewSeries(t *testing.T) {
	store := buildStore()
	res := Build(store)
	var star, grey *Series
	var starIdx int
	for _, idx := range markerIndices(res, ViewProfitability) {
		s := &res.Series[idx]
		if s.CategoryKey == "profitable" {
			star, starIdx = s, idx
		} else {
			grey = s
		}
	}
	if star == nil || grey == nil {
		t.Fatal("profitability view should carry a profitable and a no-data series")
	}
	if star.Symbol != "star" || star.MarkerSize[0] != 14 {
		t.Fatalf("profitable series symbol=%q size=%v, want star/14", star.Symbol, star.MarkerSize[0])
	}
	if got := star.Labels[0]; got != "Ghibli-like (3y)" {
		t.Fatalf("profitable label = %q, want years annotation", got)
	}
	if members := res.PointMaps[starIdx][0]; len(members) != 1 || members[0] != 0 {
		t.Fatalf("profitable provenance = %v, want [0]", members)
	}
	// Entities without a founding year sit at the default year.
	foundSparse := false
	for p, members := range res.PointMaps[indexOf(res, grey)] {
		if store.ByID(members[0]).Name == "Sparse" {
			foundSparse = true
			if *grey.X[p] != defaultFoundedYear {
				t.Fatalf("sparse entity x = %v, want default year %d", *grey.X[p], defaultFoundedYear)
			}
		}
	}
	if !foundSparse {
		t.Fatal("sparse entity missing from the no-data profitability series")
	}
}

func indexOf(res *Result, target *Series) int {
	for i := range res.Series {
		if &res.Series[i] == target {
			return i
		}
	}
	return -1
}

func TestConfig_PanicsOnUnknownKey(t *testing.T) {
	res := Build(buildStore())
	defer func() {
		if recover() == nil {
			t.Fatal("unknown view key should panic")
		}
	}()
	res.Config(ViewKey("nonsense"))
}

func TestBuild_Idempotent(t *testing.T) {
	store := buildStore()
	a := Build(store)
	b := Build(store)
	if len(a.Series) != len(b.Series) {
		t.Fatalf("series counts diverge: %d vs %d", len(a.Series), len(b.Series))
	}
	for i := range a.Series {
		if a.Series[i].Name != b.Series[i].Name || a.Series[i].Points() != b.Series[i].Points() {
			t.Fatalf("series %d diverged between builds", i)
		}
	}
}
