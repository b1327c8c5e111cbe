package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	daysAgoRe  = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
	weeksAgoRe = regexp.MustCompile(`(\d+)\s*weeks?\s*ago`)
)

// Freshness decides whether a posting's free-text date is recent enough.
// Day and week phrases are checked against separate thresholds. The verdict
// depends only on the phrase itself, never on the wall clock, so Freshness
// needs no injected time reference.
type Freshness struct {
	MaxAgeDays  int
	MaxAgeWeeks int
}

func DefaultFreshness() Freshness {
	return Freshness{MaxAgeDays: 14, MaxAgeWeeks: 2}
}

// Fresh parses relative-date phrases such as "today", "3 days ago" or
// "2 weeks ago". Absent or unparseable input counts as fresh: the filter
// favours recall over precision, so a stale posting slipping through is
// preferred to a fresh one being dropped.
func (f Freshness) Fresh(postedText string) bool {
	if postedText == "" {
		return true
	}

	text := strings.ToLower(strings.TrimSpace(postedText))

	if strings.Contains(text, "today") || strings.Contains(text, "hours ago") {
		return true
	}
	if strings.Contains(text, "yesterday") || strings.Contains(text, "1 day ago") {
		return true
	}

	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}
		return days <= f.MaxAgeDays
	}

	if m := weeksAgoRe.FindStringSubmatch(text); m != nil {
		weeks, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}
		return weeks <= f.MaxAgeWeeks
	}

	return true
}
