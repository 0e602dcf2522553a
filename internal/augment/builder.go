package augment

import (
	"sort"
	"strings"

	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/priority"
)

// builder holds the per-review state shared by the section merges.
type builder struct {
	in        Inputs
	escalator *priority.Escalator
	pctx      priority.Context
}

func (b *builder) label(t priority.Tier) string {
	if def, ok := priority.Definition(b.in.Catalog, t); ok && def.Label != "" {
		return def.Label
	}
	return t.String()
}

func (b *builder) catalogTool(name string) (catalog.Tool, bool) {
	if b.in.Catalog == nil {
		return catalog.Tool{}, false
	}
	return b.in.Catalog.Tool(name)
}

// toolMentioned returns the first catalog tool whose name occurs in text.
func (b *builder) toolMentioned(text string) (catalog.Tool, bool) {
	if b.in.Catalog == nil {
		return catalog.Tool{}, false
	}
	lower := strings.ToLower(text)
	for _, t := range b.in.Catalog.Tools {
		if strings.Contains(lower, strings.ToLower(t.Name)) {
			return t, true
		}
	}
	return catalog.Tool{}, false
}

// fallbackToolNames returns the characteristic-driven tool sets in merge order.
func (b *builder) fallbackToolNames() []string {
	if b.in.Catalog == nil {
		return nil
	}
	fb := b.in.Catalog.FallbackTools
	ch := b.in.Characteristics
	names := append([]string(nil), fb.Core...)
	if ch.IsLLM {
		names = append(names, fb.LLM...)
	}
	if ch.IsAgent {
		names = append(names, fb.Agent...)
	}
	if ch.HandlesPII {
		names = append(names, fb.PII...)
	}
	if ch.IsHighRisk {
		names = append(names, fb.HighRisk...)
	}
	return names
}

// dedupe tracks identity keys; the first occurrence wins.
type dedupe map[string]bool

func (d dedupe) first(name string) bool {
	key := identity(name)
	if key == "" || d[key] {
		return false
	}
	d[key] = true
	return true
}

func identity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizePillar(raw string) string {
	if key, ok := catalog.PillarKey(raw); ok {
		return key
	}
	return strings.ReplaceAll(identity(raw), " ", "_")
}

// pillarOrder lists the keys of recs in display order, unknown pillars last
// in lexical order.
func pillarOrder[V any](recs map[string]V) []string {
	order := make([]string, 0, len(recs))
	known := make(map[string]bool, len(catalog.Pillars))
	for _, p := range catalog.Pillars {
		known[p] = true
		if _, ok := recs[p]; ok {
			order = append(order, p)
		}
	}
	var rest []string
	for k := range recs {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
