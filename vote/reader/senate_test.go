package reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/vote"
)

const senateFixture = `<?xml version="1.0" encoding="UTF-8"?>
<roll_call_vote>
  <congress>118</congress>
  <session>2</session>
  <congress_year>2024</congress_year>
  <vote_number>00050</vote_number>
  <vote_date>February 15, 2024, 05:30 PM</vote_date>
  <question>On Passage of the Bill</question>
  <vote_question_text>On Passage of the Bill (H.R. 3684)</vote_question_text>
  <vote_result>Bill Passed</vote_result>
  <document>
    <document_congress>118</document_congress>
    <document_type>H.R.</document_type>
    <document_number>3684</document_number>
    <document_name>H.R. 3684</document_name>
  </document>
  <count>
    <yeas>68</yeas>
    <nays>28</nays>
    <present>1</present>
    <absent>3</absent>
  </count>
  <members>
    <member>
      <member_full>Baldwin (D-WI)</member_full>
      <last_name>Baldwin</last_name>
      <first_name>Tammy</first_name>
      <party>D</party>
      <state>WI</state>
      <vote_cast>Yea</vote_cast>
      <lis_member_id>S354</lis_member_id>
    </member>
    <member>
      <member_full>Barrasso (R-WY)</member_full>
      <last_name>Barrasso</last_name>
      <first_name>John</first_name>
      <party>R</party>
      <state>WY</state>
      <vote_cast>Nay</vote_cast>
      <lis_member_id>S317</lis_member_id>
    </member>
    <member>
      <member_full>Bennet (D-CO)</member_full>
      <last_name>Bennet</last_name>
      <first_name>Michael</first_name>
      <party>D</party>
      <state>CO</state>
      <vote_cast>Absent</vote_cast>
      <lis_member_id>S330</lis_member_id>
    </member>
  </members>
</roll_call_vote>`

func TestSenateReader_Parse_Fixture(t *testing.T) {
	r := NewSenateReader()

	nv, err := r.Parse([]byte(senateFixture))
	require.NoError(t, err)

	assert.Equal(t, legis.VoteKey("senate:2024-02-15:50"), nv.Key)
	assert.Equal(t, legis.ChamberSenate, nv.Chamber)
	assert.Equal(t, 118, nv.Congress)
	assert.Equal(t, 2, nv.Session)
	assert.Equal(t, 50, nv.Roll)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), nv.Date)
	assert.Equal(t, "On Passage of the Bill (H.R. 3684)", nv.Question)
	assert.Equal(t, "Bill Passed", nv.Result)

	require.NotNil(t, nv.Bill)
	assert.Equal(t, "hr3684-118", nv.Bill.Canonical())
	assert.Equal(t, legis.BillKey("118:hr:3684"), nv.BillKey)

	assert.Equal(t, vote.Counts{Yea: 68, Nay: 28, Present: 1, NotVoting: 3}, nv.Counts)

	require.Len(t, nv.Members, 3)
	assert.Equal(t, vote.MemberPosition{MemberID: "S354", Position: vote.PositionYea}, nv.Members[0])
	assert.Equal(t, vote.MemberPosition{MemberID: "S317", Position: vote.PositionNay}, nv.Members[1])
	assert.Equal(t, vote.MemberPosition{MemberID: "S330", Position: vote.PositionNotVoting}, nv.Members[2])
}

func TestSenateReader_Parse_NominationHasNoBill(t *testing.T) {
	r := NewSenateReader()

	content := `<roll_call_vote>
  <congress>118</congress>
  <session>2</session>
  <vote_number>00062</vote_number>
  <vote_date>March 6, 2024, 02:15 PM</vote_date>
  <question>On the Nomination</question>
  <vote_result>Nomination Confirmed</vote_result>
  <document>
    <document_type>PN</document_type>
    <document_number>784</document_number>
  </document>
  <count>
    <yeas>52</yeas>
    <nays>44</nays>
  </count>
</roll_call_vote>`

	nv, err := r.Parse([]byte(content))
	require.NoError(t, err)
	assert.Nil(t, nv.Bill)
	assert.Empty(t, nv.BillKey)
	assert.Equal(t, "On the Nomination", nv.Question)
	assert.Equal(t, vote.Counts{Yea: 52, Nay: 44}, nv.Counts)
}

func TestSenateReader_Parse_Malformed(t *testing.T) {
	r := NewSenateReader()

	tests := []struct {
		name    string
		content string
	}{
		{"wrong root", `<rollcall-vote><vote-metadata/></rollcall-vote>`},
		{"bad vote number", `<roll_call_vote><vote_number>fifty</vote_number><vote_date>February 15, 2024, 05:30 PM</vote_date></roll_call_vote>`},
		{"bad date", `<roll_call_vote><vote_number>00050</vote_number><vote_date>mid-February</vote_date></roll_call_vote>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, vote.ErrMalformedDocument)
		})
	}
}
