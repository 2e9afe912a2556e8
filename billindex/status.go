package billindex

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/capitolstream/rollcall/legis"
)

// StatusIndex indexes per-bill status documents by date, bill key, and
// chamber:date:roll triple. Build it with IndexDocument or IndexCollection,
// then query read-only.
type StatusIndex struct {
	logger   *slog.Logger
	byDate   map[string][]*Action
	byBill   map[legis.BillKey][]*Action
	byRoll   map[legis.VoteKey]*Action
	textURLs map[legis.BillKey][]string
	bills    map[legis.BillKey]bool
	actions  int
}

// NewStatusIndex creates an empty status index.
func NewStatusIndex(logger *slog.Logger) *StatusIndex {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusIndex{
		logger:   logger.With("component", "status-index"),
		byDate:   make(map[string][]*Action),
		byBill:   make(map[legis.BillKey][]*Action),
		byRoll:   make(map[legis.VoteKey]*Action),
		textURLs: make(map[legis.BillKey][]string),
		bills:    make(map[legis.BillKey]bool),
	}
}

// IndexDocument parses one bill-status document and folds its actions into
// the index. Records without a recognizable bill identity are rejected;
// individual actions with unparsable dates are skipped.
func (x *StatusIndex) IndexDocument(content []byte) error {
	var f billStatusFile
	if err := json.Unmarshal(content, &f); err != nil {
		return fmt.Errorf("bill status: %w: %v", ErrMalformedRecord, err)
	}
	return x.IndexBill(f.Bill)
}

// IndexBill folds an already-decoded bill record into the index.
func (x *StatusIndex) IndexBill(bill BillRecord) error {
	id := bill.BillID()
	if id == nil {
		return fmt.Errorf("bill status: no bill identity (type %q number %d): %w", bill.Type, int(bill.Number), ErrMalformedRecord)
	}
	key, err := id.Key()
	if err != nil {
		return fmt.Errorf("bill status %s: %w", id.Canonical(), ErrMalformedRecord)
	}

	x.bills[key] = true
	for _, v := range bill.TextVersions {
		x.textURLs[key] = append(x.textURLs[key], v.URLs()...)
	}

	for _, rec := range bill.Actions {
		date, err := legis.ParseDate(rec.ActionDate)
		if err != nil {
			x.logger.Warn("skipping action with unparsable date",
				"bill", key,
				"date", rec.ActionDate)
			continue
		}

		a := &Action{
			BillKey:    key,
			Date:       date,
			Text:       rec.Text,
			Roll:       ExtractRollNumber(rec.Text),
			ActionCode: rec.ActionCode,
			Chamber:    inferChamber(rec.ActionCode, rec.SourceSystem.Name),
		}

		day := date.Format(legis.DateLayout)
		x.byDate[day] = append(x.byDate[day], a)
		x.byBill[key] = append(x.byBill[key], a)
		x.actions++

		if a.Roll > 0 && a.Chamber != legis.ChamberUnknown {
			rollKey := legis.VoteRef{Chamber: a.Chamber, Date: date, Roll: a.Roll}.Key()
			if _, exists := x.byRoll[rollKey]; !exists {
				x.byRoll[rollKey] = a
			}
		}
	}
	return nil
}

// IndexCollection indexes every document matching the glob pattern. A bare
// directory indexes all JSON files beneath it. Unreadable or malformed
// files are logged and skipped; the return value is the number of
// documents indexed.
func (x *StatusIndex) IndexCollection(pattern string) (int, error) {
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		pattern = filepath.Join(pattern, "**", "*.json")
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("bad collection pattern %q: %w", pattern, err)
	}

	indexed := 0
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			x.logger.Warn("skipping unreadable document", "path", path, "error", err)
			continue
		}
		if err := x.IndexDocument(content); err != nil {
			x.logger.Warn("skipping malformed document", "path", path, "error", err)
			continue
		}
		indexed++
	}

	x.logger.Info("collection indexed",
		"pattern", pattern,
		"documents", indexed,
		"bills", len(x.bills),
		"actions", x.actions)
	return indexed, nil
}

// FindByExactRoll returns the action carrying the roll number, trying the
// exact date first and then scanning outward one day at a time: +1, -1,
// +2, -2, up to windowDays.
func (x *StatusIndex) FindByExactRoll(chamber legis.Chamber, date time.Time, roll, windowDays int) *Action {
	if chamber == legis.ChamberUnknown || roll <= 0 {
		return nil
	}

	day := legis.DayOf(date)
	for off := 0; off <= windowDays; off++ {
		for _, sign := range []int{1, -1} {
			if off == 0 && sign < 0 {
				continue
			}
			d := day.AddDate(0, 0, off*sign)
			key := legis.VoteRef{Chamber: chamber, Date: d, Roll: roll}.Key()
			if a, ok := x.byRoll[key]; ok {
				return a
			}
		}
	}
	return nil
}

// FindByBillAndDate returns the bill's actions on that calendar date.
func (x *StatusIndex) FindByBillAndDate(key legis.BillKey, date time.Time) []*Action {
	day := legis.DayOf(date)
	var out []*Action
	for _, a := range x.byBill[key] {
		if a.Date.Equal(day) {
			out = append(out, a)
		}
	}
	return out
}

// FindByDate returns all actions on a calendar date in index order.
func (x *StatusIndex) FindByDate(date time.Time) []*Action {
	return x.byDate[legis.DayOf(date).Format(legis.DateLayout)]
}

// BillTextURLs returns the bill's known text locators.
func (x *StatusIndex) BillTextURLs(key legis.BillKey) []string {
	return x.textURLs[key]
}

// HasBill reports whether the bill was indexed, with or without actions.
func (x *StatusIndex) HasBill(key legis.BillKey) bool {
	return x.bills[key]
}

// BillKeyOnly reports false: the status index supports the full date and
// roll query surface.
func (x *StatusIndex) BillKeyOnly() bool {
	return false
}

// BillCount returns the number of distinct bills indexed.
func (x *StatusIndex) BillCount() int {
	return len(x.bills)
}

// ActionCount returns the number of actions indexed.
func (x *StatusIndex) ActionCount() int {
	return x.actions
}
