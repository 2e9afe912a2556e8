package reader

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/vote"
)

const houseRootElement = "rollcall-vote"

// houseDocument mirrors the House Clerk's EVS roll-call schema.
type houseDocument struct {
	XMLName  xml.Name            `xml:"rollcall-vote"`
	Metadata houseMetadata       `xml:"vote-metadata"`
	Records  []houseRecordedVote `xml:"vote-data>recorded-vote"`
}

type houseMetadata struct {
	Congress   string      `xml:"congress"`
	Session    string      `xml:"session"`
	Rollcall   string      `xml:"rollcall-num"`
	LegisNum   string      `xml:"legis-num"`
	Question   string      `xml:"vote-question"`
	Result     string      `xml:"vote-result"`
	ActionDate string      `xml:"action-date"`
	Totals     houseTotals `xml:"vote-totals>totals-by-vote"`
}

type houseTotals struct {
	Yea       int `xml:"yea-total"`
	Nay       int `xml:"nay-total"`
	Present   int `xml:"present-total"`
	NotVoting int `xml:"not-voting-total"`
}

type houseRecordedVote struct {
	Legislator houseLegislator `xml:"legislator"`
	Vote       string          `xml:"vote"`
}

type houseLegislator struct {
	NameID string `xml:"name-id,attr"`
	Name   string `xml:",chardata"`
}

// HouseReader parses House Clerk EVS roll-call XML. Dates arrive as
// DD-Mon-YYYY tokens and the bill reference as a spaced legis-num
// ("H R 2766").
type HouseReader struct{}

// NewHouseReader creates a House EVS reader.
func NewHouseReader() *HouseReader {
	return &HouseReader{}
}

// Chamber returns the chamber this reader covers.
func (r *HouseReader) Chamber() legis.Chamber {
	return legis.ChamberHouse
}

// CanRead returns true for the EVS root element.
func (r *HouseReader) CanRead(rootElement string) bool {
	return rootElement == houseRootElement
}

// Parse parses one EVS document into a normalized vote.
func (r *HouseReader) Parse(content []byte) (*vote.NormalizedVote, error) {
	var doc houseDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("house roll call: %w: %v", vote.ErrMalformedDocument, err)
	}
	meta := doc.Metadata

	roll, err := strconv.Atoi(strings.TrimSpace(meta.Rollcall))
	if err != nil || roll <= 0 {
		return nil, fmt.Errorf("house roll call: rollcall-num %q: %w", meta.Rollcall, vote.ErrMalformedDocument)
	}

	date, err := legis.ParseDate(meta.ActionDate)
	if err != nil {
		return nil, fmt.Errorf("house roll call %d: action-date %q: %w", roll, meta.ActionDate, vote.ErrMalformedDocument)
	}

	congress := leadingInt(meta.Congress)
	ref := legis.VoteRef{Chamber: legis.ChamberHouse, Date: date, Roll: roll}

	nv := &vote.NormalizedVote{
		Key:      ref.Key(),
		Chamber:  legis.ChamberHouse,
		Congress: congress,
		Session:  leadingInt(meta.Session),
		Roll:     roll,
		Date:     date,
		Question: strings.TrimSpace(meta.Question),
		Result:   strings.TrimSpace(meta.Result),
		Counts: vote.Counts{
			Yea:       meta.Totals.Yea,
			Nay:       meta.Totals.Nay,
			Present:   meta.Totals.Present,
			NotVoting: meta.Totals.NotVoting,
		},
	}
	attachBill(nv, meta.LegisNum, congress)

	nv.Members = make([]vote.MemberPosition, 0, len(doc.Records))
	for _, rec := range doc.Records {
		id := strings.TrimSpace(rec.Legislator.NameID)
		if id == "" {
			id = strings.TrimSpace(rec.Legislator.Name)
		}
		if id == "" {
			continue
		}
		nv.Members = append(nv.Members, vote.MemberPosition{
			MemberID: id,
			Position: vote.NormalizePosition(rec.Vote),
		})
	}

	return nv, nil
}
