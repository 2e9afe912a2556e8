package billindex

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolstream/rollcall/legis"
)

const billStatusFixture = `{
  "bill": {
    "congress": 118,
    "type": "HR",
    "number": "2766",
    "title": "Shark Fin Sales Elimination Act",
    "actions": [
      {
        "actionDate": "2023-04-20",
        "text": "Referred to the Committee on Natural Resources.",
        "type": "IntroReferral",
        "actionCode": "H11100",
        "sourceSystem": {"name": "House floor actions", "code": 2}
      },
      {
        "actionDate": "2024-02-15",
        "text": "On motion to suspend the rules and pass the bill, as amended Agreed to by the Yeas and Nays: (2/3 required): 401 - 19 (Roll no. 51).",
        "type": "Floor",
        "actionCode": "H37300",
        "sourceSystem": {"name": "House floor actions", "code": 2}
      },
      {
        "actionDate": "2024-06-12",
        "text": "Passed Senate without amendment by Yea-Nay Vote. 69 - 30. Record Vote Number: 164.",
        "type": "Floor",
        "sourceSystem": {"name": "Senate", "code": 0}
      }
    ],
    "textVersions": [
      {
        "type": "Engrossed in House",
        "date": "2024-02-15",
        "formats": [
          {"type": "Formatted XML", "url": "https://www.congress.gov/118/bills/hr2766/BILLS-118hr2766eh.xml"}
        ]
      }
    ]
  }
}`

func mustDate(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := legis.ParseDate(iso)
	require.NoError(t, err)
	return d
}

func TestStatusIndex_IndexDocument(t *testing.T) {
	x := NewStatusIndex(nil)

	require.NoError(t, x.IndexDocument([]byte(billStatusFixture)))

	assert.Equal(t, 1, x.BillCount())
	assert.Equal(t, 3, x.ActionCount())
	assert.True(t, x.HasBill(legis.BillKey("118:hr:2766")))
	assert.False(t, x.HasBill(legis.BillKey("118:s:314")))
	assert.False(t, x.BillKeyOnly())
}

func TestStatusIndex_FindByExactRoll(t *testing.T) {
	x := NewStatusIndex(nil)
	require.NoError(t, x.IndexDocument([]byte(billStatusFixture)))

	a := x.FindByExactRoll(legis.ChamberHouse, mustDate(t, "2024-02-15"), 51, 1)
	require.NotNil(t, a)
	assert.Equal(t, legis.BillKey("118:hr:2766"), a.BillKey)
	assert.Equal(t, 51, a.Roll)
	assert.Equal(t, legis.ChamberHouse, a.Chamber)

	// The Senate action keyed off the record vote number.
	a = x.FindByExactRoll(legis.ChamberSenate, mustDate(t, "2024-06-12"), 164, 1)
	require.NotNil(t, a)
	assert.Equal(t, 164, a.Roll)

	// Wrong chamber, wrong roll, unknown chamber.
	assert.Nil(t, x.FindByExactRoll(legis.ChamberSenate, mustDate(t, "2024-02-15"), 51, 1))
	assert.Nil(t, x.FindByExactRoll(legis.ChamberHouse, mustDate(t, "2024-02-15"), 99, 1))
	assert.Nil(t, x.FindByExactRoll(legis.ChamberUnknown, mustDate(t, "2024-02-15"), 51, 1))
}

func TestStatusIndex_FindByExactRoll_WindowScan(t *testing.T) {
	x := NewStatusIndex(nil)

	// Same roll number on the day before and the day after the query
	// date; the outward scan must hit +1 before -1.
	before := BillRecord{Congress: 118, Type: "HR", Number: 100, Actions: []ActionRecord{{
		ActionDate: "2024-02-14",
		Text:       "Considered by the Yeas and Nays (Roll no. 50).",
		ActionCode: "H37300",
	}}}
	after := BillRecord{Congress: 118, Type: "HR", Number: 200, Actions: []ActionRecord{{
		ActionDate: "2024-02-16",
		Text:       "Considered by the Yeas and Nays (Roll no. 50).",
		ActionCode: "H37300",
	}}}
	require.NoError(t, x.IndexBill(before))
	require.NoError(t, x.IndexBill(after))

	a := x.FindByExactRoll(legis.ChamberHouse, mustDate(t, "2024-02-15"), 50, 1)
	require.NotNil(t, a)
	assert.Equal(t, legis.BillKey("118:hr:200"), a.BillKey)

	// Window zero keeps the scan on the exact date.
	assert.Nil(t, x.FindByExactRoll(legis.ChamberHouse, mustDate(t, "2024-02-15"), 50, 0))

	// A wider window still finds entries two days out.
	a = x.FindByExactRoll(legis.ChamberHouse, mustDate(t, "2024-02-18"), 50, 2)
	require.NotNil(t, a)
	assert.Equal(t, legis.BillKey("118:hr:200"), a.BillKey)
}

func TestStatusIndex_FindByBillAndDate(t *testing.T) {
	x := NewStatusIndex(nil)
	require.NoError(t, x.IndexDocument([]byte(billStatusFixture)))

	actions := x.FindByBillAndDate(legis.BillKey("118:hr:2766"), mustDate(t, "2024-02-15"))
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0].Text, "suspend the rules")

	assert.Empty(t, x.FindByBillAndDate(legis.BillKey("118:hr:2766"), mustDate(t, "2024-02-16")))
	assert.Empty(t, x.FindByBillAndDate(legis.BillKey("118:s:314"), mustDate(t, "2024-02-15")))
}

func TestStatusIndex_FindByDate(t *testing.T) {
	x := NewStatusIndex(nil)
	require.NoError(t, x.IndexDocument([]byte(billStatusFixture)))

	actions := x.FindByDate(mustDate(t, "2024-02-15"))
	require.Len(t, actions, 1)

	assert.Empty(t, x.FindByDate(mustDate(t, "2020-01-01")))
}

func TestStatusIndex_BillTextURLs(t *testing.T) {
	x := NewStatusIndex(nil)
	require.NoError(t, x.IndexDocument([]byte(billStatusFixture)))

	urls := x.BillTextURLs(legis.BillKey("118:hr:2766"))
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "BILLS-118hr2766eh.xml")

	assert.Empty(t, x.BillTextURLs(legis.BillKey("118:s:314")))
}

func TestStatusIndex_IndexDocument_Malformed(t *testing.T) {
	x := NewStatusIndex(nil)

	tests := []struct {
		name    string
		content string
	}{
		{"not json", `<bill/>`},
		{"no identity", `{"bill": {"congress": 118}}`},
		{"unknown type", `{"bill": {"congress": 118, "type": "TREATY", "number": 4}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := x.IndexDocument([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestStatusIndex_IndexCollection(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "118", "hr")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(sub, "2766.json"), []byte(billStatusFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "broken.json"), []byte(`{"bill": {}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not a document`), 0o644))

	x := NewStatusIndex(nil)
	indexed, err := x.IndexCollection(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, indexed)
	assert.True(t, x.HasBill(legis.BillKey("118:hr:2766")))
}
