package schema

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
)

// ShortName shortens a member name to its first part plus the initial of its
// last part, so "Alice Chen" becomes "Alice C.". Punctuation around each part is
// dropped and single-part names come back trimmed but otherwise unchanged.
func ShortName(name string) string {
	var parts []string
	for _, f := range strings.Fields(name) {
		p := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
		})
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return strings.TrimSpace(name)
	case 1:
		return parts[0]
	}
	last := []rune(parts[len(parts)-1])
	return parts[0] + " " + string(last[0]) + "."
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative if b is before a).
func DaysBetween(a, b time.Time) int {
	return int(TruncateDay(b).Sub(TruncateDay(a)).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s: %w", s, DateFormat, err)
	}
	return t, nil
}

// DateFormat is the layout of calendar dates in documents and output.
const DateFormat = "2006-01-02"

// LengthDays is the number of days from start to end, at least 1.
func (s Sprint) LengthDays() int {
	return max(1, DaysBetween(s.StartDate, s.EndDate))
}

// IncompleteTickets returns the tickets not in done status, in sprint order.
func (s Sprint) IncompleteTickets() []Ticket {
	var out []Ticket
	for _, t := range s.Tickets {
		if t.Status != DoneTicket {
			out = append(out, t)
		}
	}
	return out
}

// CloneSprint returns a copy of s that shares no ticket storage with it.
func CloneSprint(s Sprint) Sprint {
	clone := s
	clone.Tickets = slices.Clone(s.Tickets)
	return clone
}

// ValidateWeights checks that every metric has a usable weight entry.
func ValidateWeights(weights WeightConfig) error {
	for _, key := range AllMetricKeys {
		w, ok := weights[key]
		if !ok {
			return &ConfigError{Key: string(key), Reason: "missing weight entry"}
		}
		if w.MaxValue <= 0 {
			return &ConfigError{Key: string(key), Reason: fmt.Sprintf("max_value must be greater than 0 (received %.2f)", w.MaxValue)}
		}
		if w.Weight < 0 {
			return &ConfigError{Key: string(key), Reason: fmt.Sprintf("weight cannot be negative (received %.2f)", w.Weight)}
		}
	}
	for key := range weights {
		if _, ok := ValidMetricKeys[key]; !ok {
			return &ConfigError{Key: string(key), Reason: "unknown metric"}
		}
	}
	return nil
}

// ValidateRange rejects a range whose end is before its start.
func ValidateRange(field string, start, end time.Time) error {
	if TruncateDay(end).Before(TruncateDay(start)) {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("end %s is before start %s", end.Format(DateFormat), start.Format(DateFormat)),
		}
	}
	return nil
}
