package scenarios

import (
	"strings"
	"unicode"

	"rai-review-backend/internal/assessment"
	"rai-review-backend/internal/catalog"
	"rai-review-backend/internal/profile"
)

// Weights are the scoring constants. They are hand-tuned and change which
// scenario a profile attaches to, so they stay configurable rather than derived.
type Weights struct {
	KeywordHint   int
	IndustryMatch int
	TypeHint      int
	TypeToken     int
	MinScore      int
}

// DefaultWeights returns the stock scoring constants.
func DefaultWeights() Weights {
	return Weights{
		KeywordHint:   12,
		IndustryMatch: 10,
		TypeHint:      14,
		TypeToken:     4,
		MinScore:      6,
	}
}

// Score is the breakdown of one scenario's match score.
type Score struct {
	ScenarioID    string   `json:"scenario_id"`
	TokenOverlap  int      `json:"token_overlap"`
	KeywordHits   []string `json:"keyword_hits"`
	IndustryMatch bool     `json:"industry_match"`
	TypeHint      bool     `json:"type_hint"`
	TypeToken     bool     `json:"type_token"`
	Total         int      `json:"total"`
}

// Matcher attaches a catalog scenario to a profile.
type Matcher struct {
	weights Weights
}

func NewMatcher(w Weights) *Matcher {
	return &Matcher{weights: w}
}

// Weights returns the matcher's scoring constants.
func (m *Matcher) Weights() Weights {
	return m.weights
}

// Match returns the best scoring scenario. Ties keep catalog order; a best
// score below the floor yields no match.
func (m *Matcher) Match(p profile.Profile, ch assessment.Characteristics, cat *catalog.Catalog) (catalog.Scenario, bool) {
	scores := m.Explain(p, ch, cat)
	best := -1
	for i, s := range scores {
		if best < 0 || s.Total > scores[best].Total {
			best = i
		}
	}
	if best < 0 || scores[best].Total < m.weights.MinScore {
		return catalog.Scenario{}, false
	}
	return cat.Scenarios[best], true
}

// Explain scores every scenario in catalog order.
func (m *Matcher) Explain(p profile.Profile, ch assessment.Characteristics, cat *catalog.Catalog) []Score {
	if cat == nil {
		return nil
	}
	text := p.FreeText()
	tokens := Tokenize(text)
	industry := strings.ToLower(p.Get(profile.FieldIndustry))
	typePhrase := phrase(ch.PrimaryType)
	hinted := cat.TypeHints[ch.PrimaryType]

	out := make([]Score, 0, len(cat.Scenarios))
	for _, sc := range cat.Scenarios {
		scenarioText := scenarioText(sc)
		st := Tokenize(scenarioText)
		s := Score{ScenarioID: sc.ID}

		for tok := range tokens {
			if _, ok := st[tok]; ok {
				s.TokenOverlap++
			}
		}
		for _, hint := range sc.KeywordHints {
			h := strings.ToLower(strings.TrimSpace(hint))
			if h != "" && strings.Contains(text, h) {
				s.KeywordHits = append(s.KeywordHits, h)
			}
		}
		if industry != "" {
			for _, ind := range sc.Industries {
				ind = strings.ToLower(strings.TrimSpace(ind))
				if ind != "" && strings.Contains(industry, ind) {
					s.IndustryMatch = true
					break
				}
			}
		}
		s.TypeHint = hinted != "" && hinted == sc.ID
		s.TypeToken = typePhrase != "" && strings.Contains(" "+phrase(scenarioText)+" ", " "+typePhrase+" ")

		s.Total = s.TokenOverlap + m.weights.KeywordHint*len(s.KeywordHits)
		if s.IndustryMatch {
			s.Total += m.weights.IndustryMatch
		}
		if s.TypeHint {
			s.Total += m.weights.TypeHint
		}
		if s.TypeToken {
			s.Total += m.weights.TypeToken
		}
		out = append(out, s)
	}
	return out
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// phrase normalizes text to lower-case words separated by single spaces, so
// "Computer Vision" and "computer-vision" compare equal.
func phrase(text string) string {
	return strings.Join(splitWords(text), " ")
}

// Tokenize lower-cases text, splits on anything that is not a letter or digit,
// and keeps tokens longer than two characters.
func Tokenize(text string) map[string]struct{} {
	fields := splitWords(text)
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			out[f] = struct{}{}
		}
	}
	return out
}

func scenarioText(sc catalog.Scenario) string {
	parts := append([]string{sc.Title, sc.Description}, sc.Industries...)
	return strings.Join(parts, " ")
}
