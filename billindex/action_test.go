package billindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capitolstream/rollcall/legis"
)

func TestExtractRollNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"house clerk", "On passage Passed by the Yeas and Nays: 226 - 188 (Roll no. 29).", 29},
		{"house motion", "On motion to suspend the rules and pass the bill, as amended Agreed to by the Yeas and Nays: (2/3 required): 401 - 19 (Roll no. 51).", 51},
		{"senate", "Passed Senate with an amendment by Yea-Nay Vote. 69 - 30. Record Vote Number: 164.", 164},
		{"prose roll call", "Subject to a roll call vote no. 12 in Committee of the Whole", 12},
		{"no mention", "Referred to the Committee on Energy and Commerce.", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRollNumber(tt.text))
		})
	}
}

func TestInferChamber(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		source string
		want   legis.Chamber
	}{
		{"house code", "H37300", "", legis.ChamberHouse},
		{"senate code", "S05310", "", legis.ChamberSenate},
		{"house source", "", "House floor actions", legis.ChamberHouse},
		{"senate source", "", "Senate", legis.ChamberSenate},
		{"library of congress", "", "Library of Congress", legis.ChamberUnknown},
		{"nothing", "", "", legis.ChamberUnknown},
		{"code beats source", "H37300", "Senate", legis.ChamberHouse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferChamber(tt.code, tt.source))
		})
	}
}
