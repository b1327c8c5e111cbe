package scoring

import "testing"

func TestFresh(t *testing.T) {
	f := DefaultFreshness()

	tests := []struct {
		text string
		want bool
	}{
		{"", true}, // optimistic default
		{"Today", true},
		{"3 hours ago", true},
		{"Yesterday", true},
		{"1 day ago", true},
		{"3 days ago", true},
		{"14 days ago", true},
		{"15 days ago", false},
		{"20 days ago", false},
		{"1 week ago", true},
		{"2 weeks ago", true},
		{"3 weeks ago", false},
		{"Posted 5 days ago", true},
		{"last month", true},   // unparseable defaults to fresh
		{"2024-01-02", true},   // absolute dates are not parsed
		{"gibberish", true},
	}

	for _, tt := range tests {
		if got := f.Fresh(tt.text); got != tt.want {
			t.Errorf("Fresh(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

// The day threshold and the week threshold are applied independently; a
// tighter week limit takes effect even when the equivalent day count would
// pass. "3 weeks ago" is 21 days, rejected by the week branch regardless of
// MaxAgeDays.
func TestFresh_SeparateWeekThreshold(t *testing.T) {
	f := Freshness{MaxAgeDays: 30, MaxAgeWeeks: 2}

	if !f.Fresh("21 days ago") {
		t.Error("21 days ago should pass the 30-day threshold")
	}
	if f.Fresh("3 weeks ago") {
		t.Error("3 weeks ago should fail the 2-week threshold")
	}
}
