package priority

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier is a recommendation priority. Lower values are more severe.
type Tier int

const (
	CriticalBlocker Tier = iota
	HighlyRecommended
	Recommended
	NiceToHave
)

// Tiers lists every tier from most to least severe.
var Tiers = []Tier{CriticalBlocker, HighlyRecommended, Recommended, NiceToHave}

// Key returns the catalog key, e.g. CRITICAL_BLOCKER.
func (t Tier) Key() string {
	switch t {
	case CriticalBlocker:
		return "CRITICAL_BLOCKER"
	case HighlyRecommended:
		return "HIGHLY_RECOMMENDED"
	case Recommended:
		return "RECOMMENDED"
	case NiceToHave:
		return "NICE_TO_HAVE"
	default:
		return fmt.Sprintf("TIER_%d", int(t))
	}
}

// String returns the display name, e.g. "Critical Blocker".
func (t Tier) String() string {
	switch t {
	case CriticalBlocker:
		return "Critical Blocker"
	case HighlyRecommended:
		return "Highly Recommended"
	case Recommended:
		return "Recommended"
	case NiceToHave:
		return "Nice To Have"
	default:
		return t.Key()
	}
}

// MoreSevereThan reports whether t ranks strictly above o.
func (t Tier) MoreSevereThan(o Tier) bool {
	return t < o
}

// Max returns the more severe of a and b.
func Max(a, b Tier) Tier {
	if a.MoreSevereThan(b) {
		return a
	}
	return b
}

// ParseTier accepts catalog keys, display names and the legacy
// critical/high/medium/low priorities found in generated output.
func ParseTier(raw string) (Tier, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "critical blocker", "critical", "non negotiable", "required", "blocker":
		return CriticalBlocker, nil
	case "highly recommended", "high":
		return HighlyRecommended, nil
	case "recommended", "medium":
		return Recommended, nil
	case "nice to have", "low", "optional":
		return NiceToHave, nil
	default:
		return Recommended, fmt.Errorf("unknown priority tier %q", raw)
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Key())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTier(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
