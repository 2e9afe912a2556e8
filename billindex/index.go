// Package billindex builds in-memory lookup structures over a secondary
// legislative dataset so votes can be matched to bills. Two implementations
// share one read contract: StatusIndex, built from per-bill status
// documents with dated actions, and IssueIndex, built from issue records
// that only know bill identity.
package billindex

import (
	"errors"
	"time"

	"github.com/capitolstream/rollcall/legis"
)

// Common index errors.
var (
	// ErrMalformedRecord marks a status document or issue record missing
	// required structure. Callers skip the record and continue the load.
	ErrMalformedRecord = errors.New("malformed record")
)

// Index is the read contract the resolver consumes. Indexes are built once
// during a load phase and never mutated afterward, so concurrent readers
// need no synchronization.
type Index interface {
	// FindByExactRoll returns the action carrying the given roll number,
	// trying the exact date first and then scanning outward day by day up
	// to windowDays. Nil when no action matches.
	FindByExactRoll(chamber legis.Chamber, date time.Time, roll, windowDays int) *Action

	// FindByBillAndDate returns the bill's actions on that calendar date.
	FindByBillAndDate(key legis.BillKey, date time.Time) []*Action

	// FindByDate returns all actions on a calendar date, any bill.
	FindByDate(date time.Time) []*Action

	// BillTextURLs returns the known bill-text locators for a bill.
	BillTextURLs(key legis.BillKey) []string

	// HasBill reports whether the index knows the bill at all.
	HasBill(key legis.BillKey) bool

	// BillKeyOnly reports whether the index supports only bill-key
	// lookup. When true, the date- and roll-based queries are legitimate
	// no-ops rather than missing data errors.
	BillKeyOnly() bool
}
