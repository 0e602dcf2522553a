package assessment

import (
	"encoding/json"
	"testing"
)

func TestSelectDepthBoundariesBelongToHigherTier(t *testing.T) {
	tests := []struct {
		score int
		want  Depth
	}{
		{0, DepthMinimal},
		{24, DepthMinimal},
		{25, DepthBasic},
		{49, DepthBasic},
		{50, DepthStandard},
		{74, DepthStandard},
		{75, DepthComprehensive},
		{100, DepthComprehensive},
		{-5, DepthMinimal},
	}
	for _, tt := range tests {
		if got := SelectDepth(tt.score); got != tt.want {
			t.Fatalf("SelectDepth(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestThresholdsIncrease(t *testing.T) {
	for d := DepthBasic; d <= DepthComprehensive; d++ {
		if d.Threshold() <= (d - 1).Threshold() {
			t.Fatalf("threshold for %s not increasing", d)
		}
	}
}

func TestTemplateLimits(t *testing.T) {
	want := map[Depth]int{DepthMinimal: 5, DepthBasic: 8, DepthStandard: 12, DepthComprehensive: 0}
	for d, limit := range want {
		tpl := TemplateFor(d)
		if tpl.RecommendationLimit != limit {
			t.Fatalf("%s limit = %d, want %d", d, tpl.RecommendationLimit, limit)
		}
	}
	if !TemplateFor(DepthComprehensive).Unlimited() {
		t.Fatalf("comprehensive should be unlimited")
	}
}

func TestDepthJSON(t *testing.T) {
	data, err := json.Marshal(DepthStandard)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"standard"` {
		t.Fatalf("json = %s", data)
	}
	var d Depth
	if err := json.Unmarshal([]byte(`"basic"`), &d); err != nil || d != DepthBasic {
		t.Fatalf("unmarshal = %v %v", d, err)
	}
	if err := json.Unmarshal([]byte(`"huge"`), &d); err == nil {
		t.Fatalf("expected error for unknown depth")
	}
}

func TestTemplateIncludes(t *testing.T) {
	tests := []struct {
		depth   Depth
		section string
		want    bool
	}{
		{DepthMinimal, SectionEUAIAct, false},
		{DepthBasic, SectionEUAIAct, false},
		{DepthStandard, SectionEUAIAct, true},
		{DepthComprehensive, SectionEUAIAct, true},
		{DepthComprehensive, "anything", true},
	}
	for _, tt := range tests {
		if got := TemplateFor(tt.depth).Includes(tt.section); got != tt.want {
			t.Errorf("TemplateFor(%s).Includes(%q) = %v, want %v", tt.depth, tt.section, got, tt.want)
		}
	}
}
