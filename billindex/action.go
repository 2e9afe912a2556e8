package billindex

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/capitolstream/rollcall/legis"
)

// Action is one legislative-history entry extracted from the secondary
// dataset. Built during index load and read-only afterward.
type Action struct {
	BillKey    legis.BillKey `json:"bill_key"`
	Date       time.Time     `json:"date"`
	Text       string        `json:"text"`
	Roll       int           `json:"roll,omitempty"`
	ActionCode string        `json:"action_code,omitempty"`
	Chamber    legis.Chamber `json:"chamber,omitempty"`
}

// rollPatterns cover the roll-number spellings in action text: the House
// clerk's "(Roll no. 29)", the Senate's "Record Vote Number: 164", and the
// occasional prose "roll call vote no. 29".
var rollPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\broll\s+no\.?\s*(\d+)`),
	regexp.MustCompile(`(?i)\brecord\s+vote\s+number:?\s*(\d+)`),
	regexp.MustCompile(`(?i)\broll\s+call\s+(?:vote\s+)?(?:no\.?\s*|number\s*)?(\d+)`),
}

// ExtractRollNumber scans action text for a roll-number mention. Returns 0
// when the text carries none.
func ExtractRollNumber(text string) int {
	if text == "" {
		return 0
	}
	for _, re := range rollPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

// inferChamber guesses an action's chamber from its action code prefix,
// falling back to the source system name. Actions that identify neither
// stay unknown, which the resolver treats as matching either chamber.
func inferChamber(actionCode, sourceSystem string) legis.Chamber {
	code := strings.ToUpper(strings.TrimSpace(actionCode))
	switch {
	case strings.HasPrefix(code, "H"):
		return legis.ChamberHouse
	case strings.HasPrefix(code, "S"):
		return legis.ChamberSenate
	}

	name := strings.ToLower(sourceSystem)
	switch {
	case strings.Contains(name, "house"):
		return legis.ChamberHouse
	case strings.Contains(name, "senate"):
		return legis.ChamberSenate
	}
	return legis.ChamberUnknown
}
