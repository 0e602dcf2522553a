package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Version)
	assert.Equal(t, "customer_service_chatbot", c.Scenarios[0].ID, "scenario order is significant")
	assert.Len(t, c.Tiers, 4)
	assert.Len(t, c.Phases, 4)

	tool, ok := c.Tool("presidio")
	require.True(t, ok)
	assert.Equal(t, "Presidio", tool.Name)

	_, ok = c.Scenario("multi_agent_automation")
	assert.True(t, ok)
	assert.Equal(t, "multi_agent_automation", c.TypeHints["AI Agent"])
}

func TestToolsForRiskKeepsCatalogOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	var names []string
	for _, tool := range c.ToolsForRisk("prompt_injection_jailbreak") {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"Azure AI Content Safety", "Prompt Shields", "PyRIT"}, names)
}

func TestRegulatoryLookups(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	f, ok := c.Framework(FrameworkEUAIAct)
	require.True(t, ok)
	var levels []string
	for _, rc := range f.RiskCategories {
		levels = append(levels, rc.Level)
	}
	assert.Equal(t, []string{"Unacceptable", "High", "Limited", "Minimal"}, levels)

	req, ok := c.Industry("Regional Banking Group")
	require.True(t, ok)
	assert.Equal(t, "financial services", req.Industry)
	assert.Contains(t, req.PriorityTools, "Fairlearn")

	_, ok = c.Industry("")
	assert.False(t, ok)
	_, ok = c.Industry("agriculture")
	assert.False(t, ok)
}

func TestParseJSONCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	data, err := json.Marshal(c)
	require.NoError(t, err)

	parsed, err := Parse(data, FormatForPath("catalog.JSON"))
	require.NoError(t, err)
	assert.Equal(t, c.Version, parsed.Version)
	assert.Equal(t, c.ScenarioIDs(), parsed.ScenarioIDs())
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
		want   string
	}{
		{"missing version", func(c *Catalog) { c.Version = "" }, "version is required"},
		{"no scenarios", func(c *Catalog) { c.Scenarios = nil }, "at least one scenario"},
		{"duplicate scenario", func(c *Catalog) { c.Scenarios = append(c.Scenarios, c.Scenarios[0]) }, "duplicate id"},
		{"unknown tool", func(c *Catalog) { c.FallbackTools.Core = []string{"Nope"} }, `unknown tool "Nope"`},
		{"unknown tier", func(c *Catalog) { c.RiskPriorities["x"] = "URGENT" }, `unknown tier "URGENT"`},
		{"architecture without repos", func(c *Catalog) { c.Architectures[0].Repos = nil }, "repos and services are required"},
		{"no default architecture", func(c *Catalog) { c.Architectures = c.Architectures[:1] }, `"default" pattern`},
		{"unknown risk level", func(c *Catalog) {
			f := c.RegulatoryFrameworks[FrameworkEUAIAct]
			f.RiskCategories = append([]RiskCategory(nil), f.RiskCategories...)
			f.RiskCategories[0].Level = "Severe"
			c.RegulatoryFrameworks[FrameworkEUAIAct] = f
		}, `unknown level "Severe"`},
		{"industry tool", func(c *Catalog) { c.IndustryRequirements[0].PriorityTools = []string{"Nope"} }, `unknown tool "Nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustDecodeDefault(t)
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestHolderSwap(t *testing.T) {
	first := &Catalog{Version: "1"}
	h := NewHolder(first)
	prev := h.Swap(&Catalog{Version: "2"})
	assert.Same(t, first, prev)
	assert.Equal(t, "2", h.Current().Version)
}

func TestWatcherReloadsValidChangesOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0o644))

	initial, err := Load(path)
	require.NoError(t, err)
	holder := NewHolder(initial)

	results := make(chan error, 4)
	w, err := NewWatcher(path, holder,
		WithDebounce(50*time.Millisecond),
		WithReloadHook(func(_ *Catalog, err error) { results <- err }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	defer func() {
		cancel()
		<-w.Done()
	}()

	updated := mustDecodeDefault(t)
	updated.Version = "2099.1.0"
	out, err := yaml.Marshal(updated)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, out, 0o644))

	select {
	case err := <-results:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, "2099.1.0", holder.Current().Version)

	require.NoError(t, os.WriteFile(path, []byte("version: ''\n"), 0o644))
	select {
	case err := <-results:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rejected reload")
	}
	assert.Equal(t, "2099.1.0", holder.Current().Version)
}

func mustDecodeDefault(t *testing.T) *Catalog {
	t.Helper()
	var c Catalog
	require.NoError(t, yaml.Unmarshal(defaultCatalog, &c))
	return &c
}
