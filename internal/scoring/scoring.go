// Package scoring holds the pure ranking logic applied to incoming job
// postings: a keyword-weighted relevance score, a title relevance gate, and
// a freshness check over free-text posting dates. All functions are
// deterministic; identical inputs always produce identical results.
package scoring

import "strings"

// Weights is the keyword/weight table driving the relevance score. Keeping
// it a value rather than hard-coded literals lets either historical variant
// of the scorer be reproduced by configuration alone.
type Weights struct {
	// PriorityKeywords earn PriorityPoints each when found in the title,
	// up to PriorityCap in total.
	PriorityKeywords []string
	PriorityPoints   int
	PriorityCap      int

	// EntryKeywords earn EntryBonus once if any appears in the title.
	EntryKeywords []string
	EntryBonus    int

	// TechKeywords earn TechPoints each when found in the title or
	// description, up to TechCap in total.
	TechKeywords []string
	TechPoints   int
	TechCap      int

	// NegativeKeywords subtract NegativePenalty each when found in the
	// title or description. No cap.
	NegativeKeywords []string
	NegativePenalty  int

	// LocationKeywords earn LocationBonus once if any appears in the
	// location. Unused by the default table; kept for the legacy variant.
	LocationKeywords []string
	LocationBonus    int
}

// DefaultWeights returns the standard scoring table.
func DefaultWeights() Weights {
	return Weights{
		PriorityKeywords: []string{"soc", "security", "cybersecurity", "analyst", "python", "developer", "engineer"},
		PriorityPoints:   25,
		PriorityCap:      75,
		EntryKeywords:    []string{"junior", "entry", "associate", "intern", "graduate"},
		EntryBonus:       20,
		TechKeywords:     []string{"python", "javascript", "react", "flask", "fastapi", "linux", "sql"},
		TechPoints:       5,
		TechCap:          25,
		NegativeKeywords: []string{"senior", "5+ years", "7+ years", "10+ years", "expert", "lead", "principal", "manager", "director", "architect"},
		NegativePenalty:  30,
	}
}

type Scorer struct {
	w Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Score computes the 0-100 relevance of a posting. A missing description is
// treated as empty, never as an error. The company is accepted for signature
// parity but carries no weight in the default table; location only matters
// when the table sets a location bonus.
func (s *Scorer) Score(title, description, company, location string) int {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	score := 0

	priority := 0
	for _, kw := range s.w.PriorityKeywords {
		if strings.Contains(titleLower, kw) {
			priority += s.w.PriorityPoints
		}
	}
	score += min(priority, s.w.PriorityCap)

	for _, kw := range s.w.EntryKeywords {
		if strings.Contains(titleLower, kw) {
			score += s.w.EntryBonus
			break
		}
	}

	tech := 0
	for _, kw := range s.w.TechKeywords {
		if strings.Contains(titleLower, kw) || strings.Contains(descLower, kw) {
			tech += s.w.TechPoints
		}
	}
	score += min(tech, s.w.TechCap)

	for _, kw := range s.w.NegativeKeywords {
		if strings.Contains(titleLower, kw) || strings.Contains(descLower, kw) {
			score -= s.w.NegativePenalty
		}
	}

	if s.w.LocationBonus > 0 {
		locLower := strings.ToLower(location)
		for _, kw := range s.w.LocationKeywords {
			if strings.Contains(locLower, kw) {
				score += s.w.LocationBonus
				break
			}
		}
	}

	return min(max(score, 0), 100)
}

// TitleFilter decides whether a posting title is worth keeping at all,
// before scoring. Exclusions win over indicators.
type TitleFilter struct {
	ExcludeKeywords []string
	TechIndicators  []string
}

func DefaultTitleFilter() TitleFilter {
	return TitleFilter{
		ExcludeKeywords: []string{"sales", "marketing", "accounting", "finance", "hr", "admin", "receptionist", "driver"},
		TechIndicators: []string{
			"developer", "engineer", "analyst", "security", "software",
			"programmer", "soc", "cybersecurity", "devops", "infosec",
			"python", "javascript", "react", "full stack", "backend", "frontend",
		},
	}
}

// Relevant reports whether the title looks like a tech role.
func (f TitleFilter) Relevant(title string) bool {
	titleLower := strings.ToLower(title)
	for _, kw := range f.ExcludeKeywords {
		if strings.Contains(titleLower, kw) {
			return false
		}
	}
	for _, kw := range f.TechIndicators {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}
	return false
}
