package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog marks a catalog that failed to parse or validate.
var ErrInvalidCatalog = errors.New("invalid catalog")

var knownRiskLevels = map[string]bool{
	"Unacceptable": true,
	"High":         true,
	"Limited":      true,
	"Minimal":      true,
}

var knownTiers = map[string]bool{
	"CRITICAL_BLOCKER":   true,
	"HIGHLY_RECOMMENDED": true,
	"RECOMMENDED":        true,
	"NICE_TO_HAVE":       true,
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, FormatYAML)
}

// Format selects the catalog document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the encoding from the file extension; anything that is not .json is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads a catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, FormatForPath(path))
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", ErrInvalidCatalog, err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.buildIndexes()
	return &c, nil
}

// Validate reports every structural problem found in the catalog, joined.
func (c *Catalog) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Version) == "" {
		add("version is required")
	}
	if len(c.Scenarios) == 0 {
		add("at least one scenario is required")
	}

	tools := make(map[string]bool, len(c.Tools))
	for i, t := range c.Tools {
		name := normalizeName(t.Name)
		if name == "" {
			add("tools[%d]: name is required", i)
			continue
		}
		if tools[name] {
			add("tools[%d]: duplicate tool %q", i, t.Name)
		}
		tools[name] = true
	}
	requireTool := func(where, name string) {
		if !tools[normalizeName(name)] {
			add("%s: unknown tool %q", where, name)
		}
	}

	ids := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.ID == "" {
			add("scenarios[%d]: id is required", i)
			continue
		}
		if ids[s.ID] {
			add("scenarios[%d]: duplicate id %q", i, s.ID)
		}
		ids[s.ID] = true
		for _, ref := range s.RequiredTools {
			requireTool("scenario "+s.ID, ref.Name)
		}
		for _, ref := range s.RecommendedTools {
			requireTool("scenario "+s.ID, ref.Name)
		}
	}
	for typ, id := range c.TypeHints {
		if !ids[id] {
			add("type_hints[%s]: unknown scenario %q", typ, id)
		}
	}

	for risk, tier := range c.RiskPriorities {
		if !knownTiers[tier] {
			add("risk_priorities[%s]: unknown tier %q", risk, tier)
		}
	}
	for tier := range c.Tiers {
		if !knownTiers[tier] {
			add("tiers: unknown tier %q", tier)
		}
	}

	fb := c.FallbackTools
	for _, group := range [][]string{fb.Core, fb.LLM, fb.Agent, fb.PII, fb.HighRisk} {
		for _, name := range group {
			requireTool("fallback_tools", name)
		}
	}
	if len(fb.Core) == 0 {
		add("fallback_tools.core must not be empty")
	}

	covered := make(map[string]bool)
	for i, r := range c.Recommendations {
		if r.Tool != "" {
			requireTool(fmt.Sprintf("recommendations[%d]", i), r.Tool)
		}
		if len(r.AppliesTo) == 0 {
			covered[r.Pillar] = true
		}
	}
	for _, p := range Pillars {
		if !covered[p] {
			add("recommendations: pillar %q has no unconditional template", p)
		}
	}

	for _, a := range c.Architectures {
		if len(a.Repos) == 0 || len(a.Services) == 0 {
			add("architectures[%s]: repos and services are required", a.Key)
		}
	}
	if _, ok := c.Architecture("default"); !ok {
		add("architectures: a \"default\" pattern is required")
	}
	if len(c.Phases) == 0 {
		add("phases must not be empty")
	}

	for key, f := range c.RegulatoryFrameworks {
		if len(f.RiskCategories) == 0 {
			add("regulatory_frameworks[%s]: risk_categories must not be empty", key)
		}
		for i, rc := range f.RiskCategories {
			if !knownRiskLevels[rc.Level] {
				add("regulatory_frameworks[%s].risk_categories[%d]: unknown level %q", key, i, rc.Level)
			}
		}
	}
	for i, r := range c.IndustryRequirements {
		if strings.TrimSpace(r.Industry) == "" {
			add("industry_requirements[%d]: industry is required", i)
		}
		for _, name := range r.PriorityTools {
			requireTool("industry_requirements "+r.Industry, name)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}
