package legis

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical date form used inside keys.
const DateLayout = "2006-01-02"

// dateLayouts are the source-feed date forms tried before falling back to
// heuristic parsing: ISO, the House clerk's DD-Mon-YYYY, and the Senate's
// long prose form with a trailing clock time.
var dateLayouts = []string{
	DateLayout,
	"2-Jan-2006",
	"January 2, 2006, 3:04 PM",
	"January 2, 2006",
}

// ParseDate parses a date in any of the feed formats and truncates it to
// midnight UTC. Unrecognized input wraps ErrInvalidInput.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date: %w", ErrInvalidInput)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", raw, ErrInvalidInput)
	}
	return DayOf(t), nil
}

// DayOf truncates a timestamp to midnight UTC, the resolution at which
// votes and actions are compared.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
