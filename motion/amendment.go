package motion

import (
	"regexp"
	"strconv"
)

// Amendment identifies an amendment mentioned in motion or action text.
// Type is "sa" or "ha" when the mention carries a chamber prefix, empty
// otherwise.
type Amendment struct {
	Type   string `json:"type,omitempty"`
	Number int    `json:"number"`
}

// String returns the compact form, e.g. "sa2137" or "12".
func (a Amendment) String() string {
	return a.Type + strconv.Itoa(a.Number)
}

// amendmentPatterns run specific-first so "S.Amdt. 2137" resolves as a
// Senate amendment before the bare "Amdt." form can claim it.
var amendmentPatterns = []struct {
	re  *regexp.Regexp
	typ string
}{
	{regexp.MustCompile(`(?i)\bs\.?\s*amdt\.?\s*(?:no\.?\s*)?(\d+)\b`), "sa"},
	{regexp.MustCompile(`(?i)\bh\.?\s*amdt\.?\s*(?:no\.?\s*)?(\d+)\b`), "ha"},
	{regexp.MustCompile(`(?i)\bamdt\.?\s*(?:no\.?\s*)?(\d+)\b`), ""},
	{regexp.MustCompile(`(?i)\bamendment\s+no\.?\s*(\d+)\b`), ""},
	{regexp.MustCompile(`(?i)\bsa\s+(\d+)\b`), "sa"},
	{regexp.MustCompile(`(?i)\bha\s+(\d+)\b`), "ha"},
}

// ExtractAmendment scans text for an amendment mention. Returns nil when
// none is found.
func ExtractAmendment(text string) *Amendment {
	if text == "" {
		return nil
	}
	for _, p := range amendmentPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n <= 0 {
				continue
			}
			return &Amendment{Type: p.typ, Number: n}
		}
	}
	return nil
}
