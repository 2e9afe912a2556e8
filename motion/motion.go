// Package motion canonicalizes legislative motion text so questions from
// different feeds can be compared. Raw strings map onto a fixed table of
// motion families; text that fits no family is reduced to a simplified
// comparison form instead.
package motion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/capitolstream/rollcall/legis"
)

// Confidence grades how a motion string was canonicalized.
type Confidence string

const (
	// ConfidenceHigh means a family pattern matched directly.
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium means no family matched and the simplified text
	// stands in as the family.
	ConfidenceMedium Confidence = "medium"

	// ConfidenceLow means the input carried no usable motion text.
	ConfidenceLow Confidence = "low"
)

// Canonical is the outcome of canonicalizing one motion string.
type Canonical struct {
	Family     string     `json:"family,omitempty"`
	Confidence Confidence `json:"confidence"`
}

// Comparison is the outcome of comparing two motion strings.
type Comparison struct {
	Match bool    `json:"match"`
	Score float64 `json:"score"`
}

// family pairs a canonical name with the lowercase substrings that select
// it. Table order is matching order, and overlapping vocabularies depend on
// it: Suspend the Rules precedes On Passage because suspension questions
// also speak of passing the bill, and Motion to Concur precedes On the
// Amendment because concurrence questions name the other chamber's
// amendment.
type family struct {
	name     string
	patterns []string
}

var families = []family{
	{"Suspend the Rules", []string{"suspend the rules"}},
	{"Veto Override", []string{"objections of the president"}},
	{"Cloture", []string{"cloture"}},
	{"Motion to Table", []string{"to table"}},
	{"Motion to Recommit", []string{"recommit"}},
	{"Motion to Concur", []string{"motion to concur", "concur in the senate amendment", "concur in the house amendment"}},
	{"Previous Question", []string{"previous question"}},
	{"Motion to Proceed", []string{"motion to proceed"}},
	{"Conference Report", []string{"conference report"}},
	{"On the Nomination", []string{"nomination", "confirmation"}},
	{"On the Amendment", []string{"agreeing to the amendment", "on the amendment", "amendment no", "amdt"}},
	{"On Passage", []string{"on passage", "passage of"}},
	{"On the Joint Resolution", []string{"joint resolution"}},
	{"On the Concurrent Resolution", []string{"concurrent resolution"}},
	{"On the Resolution", []string{"agreeing to the resolution", "on the resolution"}},
	{"Motion to Adjourn", []string{"adjourn"}},
	{"Journal", []string{"journal"}},
}

var (
	asAmendedRe = regexp.MustCompile(`(?i)\bas\s+amended\b`)

	// embeddedDateRes covers the date spellings that leak into question
	// text. Bare years stay; bill short titles carry them on both sides.
	embeddedDateRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`),
	}

	punctRe      = regexp.MustCompile(`[()\[\]{},.;:]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Canonicalize maps raw motion text onto a motion family. The first family
// whose pattern appears in the text wins with high confidence. Text that
// fits no family is simplified and the simplified form stands in as the
// family with medium confidence. Input with no usable text is low.
func Canonicalize(text string) Canonical {
	s := normalize(text)
	if s == "" {
		return Canonical{Confidence: ConfidenceLow}
	}

	for _, f := range families {
		for _, p := range f.patterns {
			if strings.Contains(s, p) {
				return Canonical{Family: f.name, Confidence: ConfidenceHigh}
			}
		}
	}

	simplified := Simplify(text)
	if simplified == "" {
		return Canonical{Confidence: ConfidenceLow}
	}
	return Canonical{Family: simplified, Confidence: ConfidenceMedium}
}

// Simplify reduces motion text to a comparison form: bill references,
// "as amended", and embedded dates are blanked, punctuation drops, and the
// remainder is lowercased with whitespace collapsed.
func Simplify(text string) string {
	s := normalize(text)
	if s == "" {
		return ""
	}

	s = legis.StripBillReferences(s)
	s = asAmendedRe.ReplaceAllString(s, " ")
	for _, re := range embeddedDateRes {
		s = re.ReplaceAllString(s, " ")
	}
	s = punctRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Compare canonicalizes both motion strings and scores their agreement:
// 1.0 when both land on the same family, 0.9 when the simplified forms are
// equal, 0.7 when one simplified form contains the other, otherwise no
// match. The decision is symmetric in its arguments.
func Compare(a, b string) Comparison {
	ca := Canonicalize(a)
	cb := Canonicalize(b)
	if ca.Confidence == ConfidenceLow || cb.Confidence == ConfidenceLow {
		return Comparison{}
	}

	if ca.Confidence == ConfidenceHigh && cb.Confidence == ConfidenceHigh && ca.Family == cb.Family {
		return Comparison{Match: true, Score: 1.0}
	}

	sa := Simplify(a)
	sb := Simplify(b)
	if sa == "" || sb == "" {
		return Comparison{}
	}
	if sa == sb {
		return Comparison{Match: true, Score: 0.9}
	}
	if strings.Contains(sa, sb) || strings.Contains(sb, sa) {
		return Comparison{Match: true, Score: 0.7}
	}
	return Comparison{}
}

// normalize applies NFC, lowercases, and collapses whitespace so pattern
// matching sees one spelling of the text.
func normalize(text string) string {
	s := norm.NFC.String(text)
	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
