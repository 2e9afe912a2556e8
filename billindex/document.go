package billindex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/capitolstream/rollcall/legis"
)

// billStatusFile is the envelope of one per-bill status document.
type billStatusFile struct {
	Bill BillRecord `json:"bill"`
}

// BillRecord is the bill-status document shape the index consumes, the
// Congress API's per-bill JSON: identity fields plus flat actions and
// textVersions arrays.
type BillRecord struct {
	Congress     flexInt        `json:"congress"`
	Type         string         `json:"type"`
	Number       flexInt        `json:"number"`
	Title        string         `json:"title,omitempty"`
	Actions      []ActionRecord `json:"actions,omitempty"`
	TextVersions []TextVersion  `json:"textVersions,omitempty"`
}

// BillID normalizes the record's identity fields. Nil when the record
// carries no recognizable bill identity.
func (b BillRecord) BillID() *legis.BillID {
	if b.Type == "" || b.Number == 0 {
		return nil
	}
	raw := fmt.Sprintf("%s%d", b.Type, int(b.Number))
	return legis.NormalizeBillID(raw, int(b.Congress))
}

// ActionRecord is one entry of a bill's action history.
type ActionRecord struct {
	ActionDate   string       `json:"actionDate"`
	Text         string       `json:"text"`
	Type         string       `json:"type,omitempty"`
	ActionCode   string       `json:"actionCode,omitempty"`
	SourceSystem SourceSystem `json:"sourceSystem,omitempty"`
}

// SourceSystem names the feed an action came from.
type SourceSystem struct {
	Name string  `json:"name,omitempty"`
	Code flexInt `json:"code,omitempty"`
}

// TextVersion is one published text of a bill. The URL may sit on the
// version itself or on per-format entries.
type TextVersion struct {
	Type    string       `json:"type,omitempty"`
	Date    string       `json:"date,omitempty"`
	URL     string       `json:"url,omitempty"`
	Formats []TextFormat `json:"formats,omitempty"`
}

// TextFormat is one downloadable rendering of a text version.
type TextFormat struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// URLs collects the version's non-empty locators.
func (v TextVersion) URLs() []string {
	var urls []string
	if v.URL != "" {
		urls = append(urls, v.URL)
	}
	for _, f := range v.Formats {
		if f.URL != "" {
			urls = append(urls, f.URL)
		}
	}
	return urls
}

// flexInt tolerates the number-or-string integer encodings the feed mixes.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("integer field %q: %w", s, ErrMalformedRecord)
	}
	*f = flexInt(n)
	return nil
}
