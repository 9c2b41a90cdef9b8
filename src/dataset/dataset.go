package dataset

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Region values used by the dataset. Anything else is preserved verbatim
// but treated as international for display purposes.
const (
	RegionDomestic      = "domestic"
	RegionInternational = "international"
)

// Categorical defaults applied when a record omits the field.
const (
	DefaultAILevel   = "none"
	DefaultOwnership = "independent"
	DefaultPlatform  = "Other"
)

// SentinelSize is the minimum plottable y value used when a record has no
// size measure. Kept small so unknown-size points sit at the bottom of the
// log axis instead of disappearing.
const SentinelSize = 10.0

// Entity is one studio record. Most fields are optional; pointers stay nil
// when the source record omits the value.
type Entity struct {
	// ID is assigned once at load time (source order) and never reused.
	// All cross-references (point maps, filter results) key on it.
	ID int `yaml:"-" json:"idx"`

	Name         string   `yaml:"name" json:"name"`
	NameEN       string   `yaml:"name_en" json:"name_en"`
	Region       string   `yaml:"region" json:"region"`
	Founded      *int     `yaml:"founded" json:"founded"`
	SizeFounded  *float64 `yaml:"size_founded_num" json:"size_founded_num"`
	SizeCurrent  *float64 `yaml:"size_current_num" json:"size_current_num"`
	NotableWorks []string `yaml:"notable_works" json:"notable_works"`

	ParentCompany    string   `yaml:"parent_company" json:"parent_company,omitempty"`
	OwnershipType    string   `yaml:"ownership_type" json:"ownership_type,omitempty"`
	BusinessModel    string   `yaml:"business_model" json:"business_model,omitempty"`
	AIAdoptionLevel  string   `yaml:"ai_adoption_level" json:"ai_adoption_level,omitempty"`
	AIAdoptionDetail string   `yaml:"ai_adoption_detail" json:"ai_adoption_detail,omitempty"`
	PrimaryPlatform  []string `yaml:"primary_platform" json:"primary_platform"`

	OriginalScore        *float64 `yaml:"original_score" json:"original_score"`
	OriginalScoreFounded *float64 `yaml:"original_score_founded" json:"original_score_founded,omitempty"`
	IPOwnershipScore     *float64 `yaml:"ip_ownership_score" json:"ip_ownership_score,omitempty"`
	RevenueBillionYen    *float64 `yaml:"revenue_billion_yen" json:"revenue_billion_yen,omitempty"`
	RevenueYear          *int     `yaml:"revenue_year" json:"revenue_year,omitempty"`
	OperatingMargin      *float64 `yaml:"operating_margin" json:"operating_margin,omitempty"`
	LicensingRatio       *float64 `yaml:"licensing_ratio" json:"licensing_ratio,omitempty"`
	YearsToProfitability *int     `yaml:"years_to_profitability" json:"years_to_profitability,omitempty"`
}

// AILevel returns the AI adoption level with the documented default.
func (e *Entity) AILevel() string {
	if e.AIAdoptionLevel == "" {
		return DefaultAILevel
	}
	return e.AIAdoptionLevel
}

// Ownership returns the ownership type with the documented default.
func (e *Entity) Ownership() string {
	if e.OwnershipType == "" {
		return DefaultOwnership
	}
	return e.OwnershipType
}

// PlatformBucket returns the first primary platform, or the default bucket
// when the record lists none.
func (e *Entity) PlatformBucket() string {
	if len(e.PrimaryPlatform) == 0 {
		return DefaultPlatform
	}
	return e.PrimaryPlatform[0]
}

// RegionLabel is the display label for the region field.
func (e *Entity) RegionLabel() string {
	if e.Region == RegionDomestic {
		return "Domestic"
	}
	return "International"
}

// SearchHaystack is the lowercase text the substring filter matches against:
// name, english name and notable works.
func (e *Entity) SearchHaystack() string {
	parts := make([]string, 0, 2+len(e.NotableWorks))
	parts = append(parts, e.Name, e.NameEN)
	parts = append(parts, e.NotableWorks...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Store is the immutable ordered entity list. Entities are loaded once and
// never mutated afterwards.
type Store struct {
	entities []Entity
}

// NewStore assigns stable ids in slice order and wraps the records.
func NewStore(entities []Entity) *Store {
	for i := range entities {
		entities[i].ID = i
	}
	return &Store{entities: entities}
}

// Len returns the number of entities.
func (s *Store) Len() int { return len(s.entities) }

// All returns the ordered records. Callers must not mutate them.
func (s *Store) All() []Entity { return s.entities }

// ByID returns the entity with the given stable id.
func (s *Store) ByID(id int) *Entity {
	if id < 0 || id >= len(s.entities) {
		return nil
	}
	return &s.entities[id]
}

type datasetFile struct {
	Studios []Entity `yaml:"studios"`
}

// Load reads the YAML dataset and assigns stable ids on first read.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var f datasetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(f.Studios) == 0 {
		return nil, fmt.Errorf("dataset %s contains no studios", path)
	}
	st := NewStore(f.Studios)
	Infof("loaded %d studios from %s", st.Len(), path)
	return st, nil
}
