// Package vote defines the normalized roll-call shape shared by every
// chamber reader, plus position and count normalization.
package vote

import (
	"strings"
	"time"

	"github.com/capitolstream/rollcall/legis"
)

// Position is a member's normalized stance on a roll call.
type Position string

const (
	PositionYea       Position = "yea"
	PositionNay       Position = "nay"
	PositionPresent   Position = "present"
	PositionNotVoting Position = "not_voting"
)

// positionSynonyms maps the raw spellings the feeds use onto the four
// normalized positions. Lookups are lowercase.
var positionSynonyms = map[string]Position{
	"yea":        PositionYea,
	"aye":        PositionYea,
	"yes":        PositionYea,
	"y":          PositionYea,
	"nay":        PositionNay,
	"no":         PositionNay,
	"n":          PositionNay,
	"present":    PositionPresent,
	"not voting": PositionNotVoting,
	"not_voting": PositionNotVoting,
	"absent":     PositionNotVoting,
}

// NormalizePosition maps a raw position string onto the four-valued enum.
// Senate pair annotations ("Present, Giving Live Pair") count as present.
// Unrecognized values default to not voting.
func NormalizePosition(raw string) Position {
	s := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := positionSynonyms[s]; ok {
		return p
	}
	if strings.HasPrefix(s, "present") {
		return PositionPresent
	}
	return PositionNotVoting
}

// Counts carries the vote totals. A chamber's "absent" total contributes to
// NotVoting; Present stays its own bucket.
type Counts struct {
	Yea       int `json:"yea"`
	Nay       int `json:"nay"`
	Present   int `json:"present"`
	NotVoting int `json:"not_voting"`
}

// Total returns the sum across all four buckets.
func (c Counts) Total() int {
	return c.Yea + c.Nay + c.Present + c.NotVoting
}

// MemberPosition records one member's position, keyed by the feed's stable
// member identifier (bioguide id for the House, LIS id for the Senate).
type MemberPosition struct {
	MemberID string   `json:"member_id"`
	Position Position `json:"position"`
}

// NormalizedVote is the canonical roll-call shape every reader produces.
// Constructed once per source document and immutable afterward.
type NormalizedVote struct {
	Key      legis.VoteKey    `json:"key"`
	Chamber  legis.Chamber    `json:"chamber"`
	Congress int              `json:"congress"`
	Session  int              `json:"session"`
	Roll     int              `json:"roll"`
	Date     time.Time        `json:"date"`
	Question string           `json:"question"`
	Result   string           `json:"result"`
	Bill     *legis.BillID    `json:"bill,omitempty"`
	BillKey  legis.BillKey    `json:"bill_key,omitempty"`
	Counts   Counts           `json:"counts"`
	Members  []MemberPosition `json:"members,omitempty"`
}

// HasBill reports whether the reader found a bill reference in the source
// document or its question text.
func (v *NormalizedVote) HasBill() bool {
	return v.BillKey != ""
}
