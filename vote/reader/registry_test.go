package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/vote"
)

func TestRegistry_Parse_RoutesByRootElement(t *testing.T) {
	reg := NewRegistry()

	nv, err := reg.Parse([]byte(houseFixture))
	require.NoError(t, err)
	assert.Equal(t, legis.ChamberHouse, nv.Chamber)

	nv, err = reg.Parse([]byte(senateFixture))
	require.NoError(t, err)
	assert.Equal(t, legis.ChamberSenate, nv.Chamber)
}

func TestRegistry_Parse_UnknownRoot(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Parse([]byte(`<budget-resolution><total>1</total></budget-resolution>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, vote.ErrMalformedDocument)
}

func TestRegistry_For_NoXML(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.For([]byte("not xml at all")))
}

func TestRegistry_Chambers(t *testing.T) {
	reg := NewRegistry()
	assert.ElementsMatch(t,
		[]legis.Chamber{legis.ChamberHouse, legis.ChamberSenate},
		reg.Chambers())
}

func TestRootElement(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"house", `<?xml version="1.0"?><rollcall-vote/>`, "rollcall-vote"},
		{"senate", `<roll_call_vote><congress>118</congress></roll_call_vote>`, "roll_call_vote"},
		{"comment then root", `<!-- dump --><rollcall-vote/>`, "rollcall-vote"},
		{"empty", ``, ""},
		{"no element", `just text`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RootElement([]byte(tt.content)))
		})
	}
}
