package billindex

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/capitolstream/rollcall/legis"
)

// Issue is one issue record from a tracking database: bill identity plus a
// display title. Issues carry no action history, so an index built from
// them answers bill-key lookups only.
type Issue struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	BillNumber string `json:"bill_number"`
	Congress   int    `json:"congress"`
}

// BillID normalizes the issue's bill identity. Nil when the bill_number
// field holds nothing recognizable.
func (i Issue) BillID() *legis.BillID {
	return legis.NormalizeBillID(i.BillNumber, i.Congress)
}

// IssueIndex is the bill-key-only Index implementation. Its date and roll
// queries are deliberate no-ops the resolver reads as "no data available".
type IssueIndex struct {
	logger *slog.Logger
	byBill map[legis.BillKey]*Issue
}

// NewIssueIndex creates an empty issue index.
func NewIssueIndex(logger *slog.Logger) *IssueIndex {
	if logger == nil {
		logger = slog.Default()
	}
	return &IssueIndex{
		logger: logger.With("component", "issue-index"),
		byBill: make(map[legis.BillKey]*Issue),
	}
}

// IndexIssue adds one issue. Issues without a usable bill identity are
// rejected. The first issue for a bill key wins.
func (x *IssueIndex) IndexIssue(issue Issue) error {
	id := issue.BillID()
	if id == nil {
		return fmt.Errorf("issue %d: bill_number %q: %w", issue.ID, issue.BillNumber, ErrMalformedRecord)
	}
	key, err := id.Key()
	if err != nil {
		return fmt.Errorf("issue %d: %s: %w", issue.ID, id.Canonical(), ErrMalformedRecord)
	}

	if _, exists := x.byBill[key]; !exists {
		iss := issue
		x.byBill[key] = &iss
	}
	return nil
}

// IndexIssues adds a batch of issues, logging and skipping the malformed
// ones. Returns the number indexed.
func (x *IssueIndex) IndexIssues(issues []Issue) int {
	indexed := 0
	for _, issue := range issues {
		if err := x.IndexIssue(issue); err != nil {
			x.logger.Warn("skipping issue", "id", issue.ID, "error", err)
			continue
		}
		indexed++
	}
	x.logger.Info("issues indexed", "count", indexed, "bills", len(x.byBill))
	return indexed
}

// FindByExactRoll always returns nil; issues carry no roll numbers.
func (x *IssueIndex) FindByExactRoll(legis.Chamber, time.Time, int, int) *Action {
	return nil
}

// FindByBillAndDate always returns nil; issues carry no action dates.
func (x *IssueIndex) FindByBillAndDate(legis.BillKey, time.Time) []*Action {
	return nil
}

// FindByDate always returns nil; issues carry no action dates.
func (x *IssueIndex) FindByDate(time.Time) []*Action {
	return nil
}

// BillTextURLs always returns nil; issues carry no text locators.
func (x *IssueIndex) BillTextURLs(legis.BillKey) []string {
	return nil
}

// HasBill reports whether an issue covers the bill.
func (x *IssueIndex) HasBill(key legis.BillKey) bool {
	_, ok := x.byBill[key]
	return ok
}

// BillKeyOnly reports true: only HasBill carries signal here.
func (x *IssueIndex) BillKeyOnly() bool {
	return true
}

// IssueFor returns the issue covering a bill key, nil when none does.
func (x *IssueIndex) IssueFor(key legis.BillKey) *Issue {
	return x.byBill[key]
}

// BillCount returns the number of distinct bills covered.
func (x *IssueIndex) BillCount() int {
	return len(x.byBill)
}
