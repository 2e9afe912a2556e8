package legis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBillID_CommonForms(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		congress int
		want     string
	}{
		{"clerk spaced", "H R 2766", 118, "hr2766-118"},
		{"dotted", "H.R. 1234", 118, "hr1234-118"},
		{"compact", "hr2766", 118, "hr2766-118"},
		{"already canonical", "hr2766-118", 0, "hr2766-118"},
		{"senate bill", "S. 314", 118, "s314-118"},
		{"joint resolution", "H.J.Res. 26", 118, "hjres26-118"},
		{"joint res abbreviated", "HJR 26", 118, "hjres26-118"},
		{"concurrent", "S. Con. Res. 14", 118, "sconres14-118"},
		{"simple resolution", "H. Res. 892", 118, "hres892-118"},
		{"legacy house bill", "HB82", 119, "hr82-119"},
		{"legacy senate bill", "S.B. 12", 119, "s12-119"},
		{"extra whitespace", "  h  r   2766  ", 118, "hr2766-118"},
		{"no congress", "H.R. 2766", 0, "hr2766"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NormalizeBillID(tt.raw, tt.congress)
			require.NotNil(t, id)
			assert.Equal(t, tt.want, id.Canonical())
		})
	}
}

func TestNormalizeBillID_TrailingCongressNotStrippedFromBillNumber(t *testing.T) {
	// "h.r. 118" is bill number 118, not a congress suffix.
	id := NormalizeBillID("h.r. 118", 0)
	require.NotNil(t, id)
	assert.Equal(t, BillTypeHR, id.Type)
	assert.Equal(t, 118, id.Number)
	assert.Equal(t, 0, id.Congress)
}

func TestNormalizeBillID_SuppliedCongressWins(t *testing.T) {
	// A caller-supplied congress disables suffix extraction entirely.
	id := NormalizeBillID("hr2766", 117)
	require.NotNil(t, id)
	assert.Equal(t, 117, id.Congress)
}

func TestNormalizeBillID_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "   ", "2766", "amendments", "hr", "xyz 12"} {
		assert.Nil(t, NormalizeBillID(raw, 118), "raw=%q", raw)
	}
}

func TestBillID_Key(t *testing.T) {
	id := BillID{Type: BillTypeHR, Number: 2766, Congress: 118}

	key, err := id.Key()
	require.NoError(t, err)
	assert.Equal(t, BillKey("118:hr:2766"), key)

	_, err = BillID{Type: BillTypeHR, Number: 2766}.Key()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExtractBillReference_MotionText(t *testing.T) {
	tests := []struct {
		name string
		text string
		typ  BillType
		num  int
	}{
		{"suspend and pass", "On Motion to Suspend the Rules and Pass H.R. 2766, as Amended", BillTypeHR, 2766},
		{"passage", "On Passage of the Bill H. R. 82", BillTypeHR, 82},
		{"senate passage", "On Passage of the Bill (S. 314)", BillTypeS, 314},
		{"joint resolution", "On the Joint Resolution S.J.Res. 38", BillTypeSJRes, 38},
		{"concurrent before simple", "On Agreeing to the Resolution H. Con. Res. 44", BillTypeHConRes, 44},
		{"simple resolution", "On Agreeing to the Resolution H.Res. 892", BillTypeHRes, 892},
		{"compact", "Providing for consideration of HR5376", BillTypeHR, 5376},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ExtractBillReference(tt.text)
			require.NotNil(t, id)
			assert.Equal(t, tt.typ, id.Type)
			assert.Equal(t, tt.num, id.Number)
			assert.Equal(t, 0, id.Congress)
		})
	}
}

func TestExtractBillReference_NoReference(t *testing.T) {
	for _, text := range []string{
		"",
		"On the Motion to Table",
		"On the Cloture Motion",
		"On the Nomination",
	} {
		assert.Nil(t, ExtractBillReference(text), "text=%q", text)
	}
}

func TestExtractBillReference_SpecificBeatsGeneric(t *testing.T) {
	// A joint resolution must never half-match as a plain House bill.
	id := ExtractBillReference("On Passage of H.J.Res. 26")
	require.NotNil(t, id)
	assert.Equal(t, BillTypeHJRes, id.Type)
	assert.Equal(t, 26, id.Number)
}
