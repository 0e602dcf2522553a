package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderIncludesLabeledCounters(t *testing.T) {
	IncSectionFallback("risk_scores")
	IncSectionFallback("risk_scores")
	IncCacheResult("stale")

	out := Render()
	if !strings.Contains(out, `section_fallback_total{section="risk_scores"}`) {
		t.Fatalf("expected section fallback counter, got:\n%s", out)
	}
	if !strings.Contains(out, `resource_cache_total{freshness="stale"}`) {
		t.Fatalf("expected cache counter, got:\n%s", out)
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d, want 3", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("per-bucket counts = %v, want [1 1]", snap.counts)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "x", "help", snap)
	out := buf.String()
	if !strings.Contains(out, `x_bucket{le="100"} 2`) {
		t.Fatalf("expected cumulative bucket, got:\n%s", out)
	}
	if !strings.Contains(out, `x_bucket{le="+Inf"} 3`) {
		t.Fatalf("expected +Inf bucket, got:\n%s", out)
	}
}
