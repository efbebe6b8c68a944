package activity

import "time"

// Report scopes, widening with the covered date range.
const (
	ScopeBiweekly  = "biweekly"
	ScopeMonthly   = "monthly"
	ScopeQuarterly = "quarterly"
)

// DateRange describes the detected reporting window.
type DateRange struct {
	Scope string     `json:"scope"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
	Days  int        `json:"days,omitempty"`
}

// IndividualSections reports whether per-member sections are generated for
// this scope.
func (d DateRange) IndividualSections() bool {
	return d.Scope == ScopeBiweekly || d.Scope == ScopeMonthly
}

// FocusCount is the default highlight size for the scope.
func (d DateRange) FocusCount() int {
	switch d.Scope {
	case ScopeQuarterly:
		return 8
	case ScopeMonthly:
		return 6
	default:
		return 4
	}
}

// FormatStart renders the range start, or "n/a" when no timestamps were seen.
func (d DateRange) FormatStart(layout string) string {
	if d.Start == nil {
		return "n/a"
	}
	return d.Start.Format(layout)
}

// FormatEnd renders the range end, or "n/a" when no timestamps were seen.
func (d DateRange) FormatEnd(layout string) string {
	if d.End == nil {
		return "n/a"
	}
	return d.End.Format(layout)
}

// DetectRange computes the scope from collected timestamps. Spans of up to 16
// calendar days are biweekly, up to 45 monthly, anything longer quarterly.
// Without timestamps it defaults to biweekly with no dates.
func DetectRange(timestamps []time.Time) DateRange {
	if len(timestamps) == 0 {
		return DateRange{Scope: ScopeBiweekly}
	}
	min, max := timestamps[0], timestamps[0]
	for _, t := range timestamps[1:] {
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	minDay := time.Date(min.Year(), min.Month(), min.Day(), 0, 0, 0, 0, time.UTC)
	maxDay := time.Date(max.Year(), max.Month(), max.Day(), 0, 0, 0, 0, time.UTC)
	days := int(maxDay.Sub(minDay).Hours()/24) + 1

	scope := ScopeQuarterly
	switch {
	case days <= 16:
		scope = ScopeBiweekly
	case days <= 45:
		scope = ScopeMonthly
	}
	return DateRange{Scope: scope, Start: &min, End: &max, Days: days}
}
