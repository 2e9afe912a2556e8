package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmendment_Forms(t *testing.T) {
	tests := []struct {
		name string
		text string
		typ  string
		num  int
	}{
		{"amendment no", "On Agreeing to the Amendment No. 12", "", 12},
		{"amdt", "Whitehouse Amdt. No. 823", "", 823},
		{"senate amdt", "On the Amendment S.Amdt. 2137", "sa", 2137},
		{"sa token", "Motion to Table SA 2137", "sa", 2137},
		{"ha token", "On Agreeing to HA 25", "ha", 25},
		{"house amdt", "H.Amdt. 414 to H.R. 2670", "ha", 414},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ExtractAmendment(tt.text)
			require.NotNil(t, a)
			assert.Equal(t, tt.typ, a.Type)
			assert.Equal(t, tt.num, a.Number)
		})
	}
}

func TestExtractAmendment_NoMention(t *testing.T) {
	for _, text := range []string{
		"",
		"On Passage",
		"On Motion to Suspend the Rules and Pass H.R. 2766, as Amended",
	} {
		assert.Nil(t, ExtractAmendment(text), "text=%q", text)
	}
}
