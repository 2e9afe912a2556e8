// Package resolver links normalized roll-call votes to bills by trying a
// fixed priority order of matching strategies over a read-only action
// index. Every call produces a result, resolved or not, and appends it to
// an owned resolution log for statistics and audit.
package resolver

import (
	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/motion"
)

// Strategy names the matching technique that produced a result.
type Strategy string

const (
	// StrategyDirectBill is a bill-key lookup against an index that
	// supports only bill-key queries.
	StrategyDirectBill Strategy = "direct_bill"

	// StrategyExactRoll matches the vote's roll number against an action
	// mentioning the same roll, scanning a small date window.
	StrategyExactRoll Strategy = "exact_roll"

	// StrategyBillDate matches the vote's own bill to an action on the
	// vote's calendar date.
	StrategyBillDate Strategy = "bill_date"

	// StrategyMotionSimilarity matches the vote's question text against
	// same-date action text.
	StrategyMotionSimilarity Strategy = "motion_similarity"

	// StrategyAmendment links an amendment vote to the amended bill's
	// same-date actions.
	StrategyAmendment Strategy = "amendment"

	// StrategyNone marks an unresolved vote. Not an error.
	StrategyNone Strategy = "none"
)

// Strategies lists every strategy in priority order, StrategyNone last.
func Strategies() []Strategy {
	return []Strategy{
		StrategyDirectBill,
		StrategyExactRoll,
		StrategyBillDate,
		StrategyMotionSimilarity,
		StrategyAmendment,
		StrategyNone,
	}
}

// Result links one vote to a bill, or records why no link was made.
// Produced once per vote and never mutated.
type Result struct {
	VoteKey    legis.VoteKey `json:"vote_key"`
	BillKey    legis.BillKey `json:"bill_key,omitempty"`
	Strategy   Strategy      `json:"strategy"`
	Confidence float64       `json:"confidence"`

	// Reason explains an unresolved result as a semicolon-joined list of
	// the conditions that blocked each strategy. Empty when resolved.
	Reason string `json:"reason,omitempty"`

	// TextURLs carries the resolved bill's text locators for downstream
	// summarization.
	TextURLs []string `json:"text_urls,omitempty"`

	// Strategy-specific metadata.
	DateOffset  int               `json:"date_offset,omitempty"`
	ActionText  string            `json:"action_text,omitempty"`
	MotionScore float64           `json:"motion_score,omitempty"`
	Amendment   *motion.Amendment `json:"amendment,omitempty"`
}

// Resolved reports whether the vote was linked to a bill.
func (r Result) Resolved() bool {
	return r.Strategy != StrategyNone && r.Strategy != ""
}
