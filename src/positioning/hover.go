package positioning

import (
	"fmt"
	"strings"

	"github.com/murasaqi/anime-studio-positioning-map/src/dataset"
)

// HoverSeparator joins the per-entity fragments of a merged point's hover
// text. The filter engine splits on it to drop fragments of filtered-out
// members, so it must never occur inside a fragment.
const HoverSeparator = "\n──────────\n"

// SizeAttr names which size measure a view plots; the numeric filter clause
// reads the active view's attribute.
type SizeAttr int

const (
	SizeCurrent SizeAttr = iota
	SizeFounded
)

// Of returns the entity's value for the attribute, nil when absent.
func (a SizeAttr) Of(e *dataset.Entity) *float64 {
	if a == SizeFounded {
		return e.SizeFounded
	}
	return e.SizeCurrent
}

// Selector returns the attribute as a coordinate selector.
func (a SizeAttr) Selector() Selector {
	return func(e *dataset.Entity) (float64, bool) {
		if v := a.Of(e); v != nil {
			return *v, true
		}
		return 0, false
	}
}

// Display labels for the closed categorical sets.
var (
	aiLevelLabels = map[string]string{
		"none":         "None",
		"experimental": "Experimental",
		"production":   "Production",
		"core":         "Core",
	}
	ownershipLabels = map[string]string{
		"independent":   "Independent",
		"subsidiary":    "Subsidiary",
		"group_company": "Group company",
	}
	businessModelLabels = map[string]string{
		"commission": "Commission",
		"mixed":      "Mixed",
		"original":   "Original",
		"ip_holding": "IP holding",
	}
)

func labelFor(table map[string]string, key string) string {
	if l, ok := table[key]; ok {
		return l
	}
	return key
}

// HoverText renders one entity's hover fragment. Missing optional attributes
// simply drop their line; nothing here fails.
func HoverText(e *dataset.Entity, sizeAttr SizeAttr) string {
	lines := []string{
		e.Name,
		"Region: " + e.RegionLabel(),
	}
	if e.Founded != nil {
		lines = append(lines, fmt.Sprintf("Founded: %d", *e.Founded))
	} else {
		lines = append(lines, "Founded: ?")
	}
	if v := sizeAttr.Of(e); v != nil {
		lines = append(lines, fmt.Sprintf("Staff: %.0f", *v))
	} else {
		lines = append(lines, "Staff: ?")
	}
	if e.OriginalScore != nil {
		lines = append(lines, fmt.Sprintf("Originality score: %.2f", *e.OriginalScore))
	} else {
		lines = append(lines, "Originality score: ?")
	}
	if e.ParentCompany != "" {
		lines = append(lines, "Parent company: "+e.ParentCompany)
	}
	if e.OwnershipType != "" {
		lines = append(lines, "Ownership: "+labelFor(ownershipLabels, e.OwnershipType))
	}
	if lvl := e.AILevel(); lvl != dataset.DefaultAILevel {
		ai := "AI adoption: " + labelFor(aiLevelLabels, lvl)
		if e.AIAdoptionDetail != "" {
			ai += " (" + e.AIAdoptionDetail + ")"
		}
		lines = append(lines, ai)
	}
	if e.RevenueBillionYen != nil {
		year := "?"
		if e.RevenueYear != nil {
			year = fmt.Sprintf("%d", *e.RevenueYear)
		}
		lines = append(lines, fmt.Sprintf("Revenue: ¥%gB (%s)", *e.RevenueBillionYen, year))
	}
	if e.OperatingMargin != nil {
		lines = append(lines, fmt.Sprintf("Operating margin: %.1f%%", *e.OperatingMargin*100))
	}
	if e.LicensingRatio != nil {
		lines = append(lines, fmt.Sprintf("Licensing ratio: %.0f%%", *e.LicensingRatio*100))
	}
	if len(e.PrimaryPlatform) > 0 {
		lines = append(lines, "Platforms: "+strings.Join(e.PrimaryPlatform, ", "))
	}
	if e.YearsToProfitability != nil {
		lines = append(lines, fmt.Sprintf("Years to profitability: %d", *e.YearsToProfitability))
	}
	works := e.NotableWorks
	if len(works) > 3 {
		works = works[:3]
	}
	lines = append(lines, "Notable works: "+strings.Join(works, ", "))
	return strings.Join(lines, "\n")
}

// mergedHover renders a merged point's combined hover text: the fragments of
// every member, joined by HoverSeparator in member order.
func mergedHover(store *dataset.Store, p MergedPoint, sizeAttr SizeAttr) string {
	if len(p.Members) == 1 {
		return HoverText(store.ByID(p.Members[0]), sizeAttr)
	}
	parts := make([]string, len(p.Members))
	for i, id := range p.Members {
		parts[i] = HoverText(store.ByID(id), sizeAttr)
	}
	return strings.Join(parts, HoverSeparator)
}
