package legis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BillID identifies a bill by type, number, and (when known) congress.
type BillID struct {
	Type     BillType `json:"type"`
	Number   int      `json:"number"`
	Congress int      `json:"congress,omitempty"`
}

// Canonical renders the compact display form, e.g. "hr2766-118". The
// congress suffix is omitted when the congress is unknown.
func (b BillID) Canonical() string {
	if b.Congress > 0 {
		return fmt.Sprintf("%s%d-%d", b.Type, b.Number, b.Congress)
	}
	return fmt.Sprintf("%s%d", b.Type, b.Number)
}

// Key renders the canonical BillKey. Fails when the congress is unknown.
func (b BillID) Key() (BillKey, error) {
	return MakeBillKey(b.Congress, string(b.Type), b.Number)
}

// billTypeAliases maps punctuation-stripped spellings onto bill types.
// Covers the standard forms plus the informal joint/concurrent/simple
// abbreviations that show up in feed data. The legacy two-letter HB/SB
// forms are handled separately in parseLegacyBill.
var billTypeAliases = map[string]BillType{
	"hr":      BillTypeHR,
	"hres":    BillTypeHRes,
	"hjres":   BillTypeHJRes,
	"hconres": BillTypeHConRes,
	"s":       BillTypeS,
	"sres":    BillTypeSRes,
	"sjres":   BillTypeSJRes,
	"sconres": BillTypeSConRes,
	"hjr":     BillTypeHJRes,
	"sjr":     BillTypeSJRes,
	"hcr":     BillTypeHConRes,
	"scr":     BillTypeSConRes,
	"sr":      BillTypeSRes,
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// trailingCongressRe captures a 3-digit congress number at the tail
	// of a reference, separated from the body ("hr2766-118", "s 14 118").
	trailingCongressRe = regexp.MustCompile(`^(.*?)[\s.\-]+(\d{3})$`)

	// spacedBillRe matches letters-then-number with at least one space or
	// dot between them ("h r 2766", "h.r. 1234", "h. con. res. 44").
	spacedBillRe = regexp.MustCompile(`^([a-z](?:[a-z\s.])*?)[\s.]+(\d+)$`)

	// compactBillRe matches letters immediately followed by digits
	// ("hr2766", "sjres33").
	compactBillRe = regexp.MustCompile(`^([a-z]+)(\d+)$`)

	// legacyBillRe matches the two-letter house-bill/senate-bill forms
	// ("hb82", "s.b. 12").
	legacyBillRe = regexp.MustCompile(`^([hs])\.?\s*b\.?\s*(\d+)$`)
)

// NormalizeBillID parses a raw bill-reference string in any of its common
// spellings into a BillID. A trailing 3-digit congress is extracted when no
// congress is supplied. Returns nil when nothing matches.
func NormalizeBillID(raw string, congress int) *BillID {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = whitespaceRe.ReplaceAllString(s, " ")
	if s == "" {
		return nil
	}

	if congress == 0 {
		if m := trailingCongressRe.FindStringSubmatch(s); m != nil {
			if c, err := strconv.Atoi(m[2]); err == nil {
				if id := parseBillBody(strings.TrimSpace(m[1]), c); id != nil {
					return id
				}
			}
		}
	}
	return parseBillBody(s, congress)
}

// parseBillBody tries the three reference patterns in order. A pattern hit
// whose letters miss the alias table falls through to the next pattern, so
// legacy forms like "hb82" reach parseLegacyBill.
func parseBillBody(s string, congress int) *BillID {
	if m := spacedBillRe.FindStringSubmatch(s); m != nil {
		if id := lookupBill(m[1], m[2], congress); id != nil {
			return id
		}
	}
	if m := compactBillRe.FindStringSubmatch(s); m != nil {
		if id := lookupBill(m[1], m[2], congress); id != nil {
			return id
		}
	}
	if m := legacyBillRe.FindStringSubmatch(s); m != nil {
		t := BillTypeHR
		if m[1] == "s" {
			t = BillTypeS
		}
		if n := parseBillNumber(m[2]); n > 0 {
			return &BillID{Type: t, Number: n, Congress: congress}
		}
	}
	return nil
}

// lookupBill resolves a letters token through the alias table.
func lookupBill(letters, digits string, congress int) *BillID {
	t, ok := billTypeAliases[stripTypeToken(letters)]
	if !ok {
		return nil
	}
	n := parseBillNumber(digits)
	if n <= 0 {
		return nil
	}
	return &BillID{Type: t, Number: n, Congress: congress}
}

func parseBillNumber(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// stripTypeToken removes the punctuation and spacing that feed data mixes
// into bill-type spellings.
func stripTypeToken(s string) string {
	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(s)
}

// billRefPatterns scans free text for embedded bill mentions, ordered most
// specific (joint and concurrent resolutions) to least (bare HR/S), so
// "H.J.Res. 26" never half-matches as a House bill.
var billRefPatterns = []struct {
	re  *regexp.Regexp
	typ BillType
}{
	{regexp.MustCompile(`(?i)\bh\.?\s*j\.?\s*res\.?\s*(\d+)`), BillTypeHJRes},
	{regexp.MustCompile(`(?i)\bs\.?\s*j\.?\s*res\.?\s*(\d+)`), BillTypeSJRes},
	{regexp.MustCompile(`(?i)\bh\.?\s*con\.?\s*res\.?\s*(\d+)`), BillTypeHConRes},
	{regexp.MustCompile(`(?i)\bs\.?\s*con\.?\s*res\.?\s*(\d+)`), BillTypeSConRes},
	{regexp.MustCompile(`(?i)\bh\.?\s*res\.?\s*(\d+)`), BillTypeHRes},
	{regexp.MustCompile(`(?i)\bs\.?\s*res\.?\s*(\d+)`), BillTypeSRes},
	{regexp.MustCompile(`(?i)\bh\.?\s*r\.?\s*(\d+)`), BillTypeHR},
	{regexp.MustCompile(`(?i)\bs\.?\s*(\d+)\b`), BillTypeS},
}

// ExtractBillReference scans free text (motion strings, action text) for an
// embedded bill mention. Unlike NormalizeBillID the input is not a known
// bill field, so matching is positional within arbitrary prose. Returns nil
// when no mention is found; the congress is never inferred from prose.
func ExtractBillReference(text string) *BillID {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, p := range billRefPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			if n := parseBillNumber(m[1]); n > 0 {
				return &BillID{Type: p.typ, Number: n}
			}
		}
	}
	return nil
}

// StripBillReferences blanks every embedded bill mention, leaving the
// surrounding prose intact. Patterns run specific-first so compound forms
// like "H.J.Res. 26" are removed whole rather than leaving a stray tail.
func StripBillReferences(text string) string {
	for _, p := range billRefPatterns {
		text = p.re.ReplaceAllString(text, " ")
	}
	return text
}
