package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `studios:
  - name: Alpha Animation
    name_en: Alpha
    region: domestic
    founded: 1985
    size_founded_num: 30
    size_current_num: 250
    original_score: 0.6
    notable_works: ["Work A", "Work B"]
    ownership_type: independent
  - name: Beta Works
    region: international
    original_score: 0.2
    primary_platform: ["Netflix", "Crunchyroll"]
  - name: Gamma Films
    region: domestic
    founded: 2010
    original_score: 0.9
    ai_adoption_level: production
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "studios.yaml")
	if err := os.WriteFile(p, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return p
}

func TestLoad_AssignsStableIDsInSourceOrder(t *testing.T) {
	st, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Len() != 3 {
		t.Fatalf("want 3 entities, got %d", st.Len())
	}
	for i, e := range st.All() {
		if e.ID != i {
			t.Fatalf("entity %q: want id %d got %d", e.Name, i, e.ID)
		}
	}
	if got := st.ByID(1); got == nil || got.Name != "Beta Works" {
		t.Fatalf("ByID(1) = %+v, want Beta Works", got)
	}
	if st.ByID(99) != nil {
		t.Fatalf("ByID out of range must return nil")
	}
}

func TestLoad_OptionalFieldsStayNil(t *testing.T) {
	st, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	beta := st.ByID(1)
	if beta.Founded != nil || beta.SizeCurrent != nil || beta.SizeFounded != nil {
		t.Fatalf("missing optional fields must stay nil: %+v", beta)
	}
	if beta.OriginalScore == nil || *beta.OriginalScore != 0.2 {
		t.Fatalf("original_score not decoded: %+v", beta.OriginalScore)
	}
}

func TestEntityDefaults(t *testing.T) {
	e := Entity{Name: "X", Region: RegionInternational}
	if got := e.AILevel(); got != DefaultAILevel {
		t.Errorf("AILevel default: got %q", got)
	}
	if got := e.Ownership(); got != DefaultOwnership {
		t.Errorf("Ownership default: got %q", got)
	}
	if got := e.PlatformBucket(); got != DefaultPlatform {
		t.Errorf("PlatformBucket default: got %q", got)
	}
	if got := e.RegionLabel(); got != "International" {
		t.Errorf("RegionLabel: got %q", got)
	}
	e.PrimaryPlatform = []string{"Netflix", "Amazon"}
	if got := e.PlatformBucket(); got != "Netflix" {
		t.Errorf("PlatformBucket first entry: got %q", got)
	}
}

func TestSearchHaystack(t *testing.T) {
	e := Entity{Name: "Alpha Animation", NameEN: "ALPHA", NotableWorks: []string{"Sky Saga"}}
	h := e.SearchHaystack()
	for _, want := range []string{"alpha animation", "sky saga"} {
		if !strings.Contains(h, want) {
			t.Errorf("haystack %q missing %q", h, want)
		}
	}
}
