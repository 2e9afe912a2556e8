package reader

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/vote"
)

const senateRootElement = "roll_call_vote"

// senateDocument mirrors the Senate's roll_call_vote schema.
type senateDocument struct {
	XMLName      xml.Name          `xml:"roll_call_vote"`
	Congress     string            `xml:"congress"`
	Session      string            `xml:"session"`
	VoteNumber   string            `xml:"vote_number"`
	VoteDate     string            `xml:"vote_date"`
	Question     string            `xml:"question"`
	QuestionText string            `xml:"vote_question_text"`
	Result       string            `xml:"vote_result"`
	Document     senateDocumentRef `xml:"document"`
	Count        senateCount       `xml:"count"`
	Members      []senateMember    `xml:"members>member"`
}

type senateDocumentRef struct {
	Type     string `xml:"document_type"`
	Number   string `xml:"document_number"`
	Congress string `xml:"document_congress"`
}

type senateCount struct {
	Yeas    int `xml:"yeas"`
	Nays    int `xml:"nays"`
	Present int `xml:"present"`
	Absent  int `xml:"absent"`
}

type senateMember struct {
	LisID    string `xml:"lis_member_id"`
	LastName string `xml:"last_name"`
	VoteCast string `xml:"vote_cast"`
}

// SenateReader parses Senate roll_call_vote XML. Vote numbers arrive
// zero-padded ("00050"), dates as long prose with a clock time, and the
// bill reference as a document type/number pair.
type SenateReader struct{}

// NewSenateReader creates a Senate roll-call reader.
func NewSenateReader() *SenateReader {
	return &SenateReader{}
}

// Chamber returns the chamber this reader covers.
func (r *SenateReader) Chamber() legis.Chamber {
	return legis.ChamberSenate
}

// CanRead returns true for the Senate root element.
func (r *SenateReader) CanRead(rootElement string) bool {
	return rootElement == senateRootElement
}

// Parse parses one Senate document into a normalized vote.
func (r *SenateReader) Parse(content []byte) (*vote.NormalizedVote, error) {
	var doc senateDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("senate roll call: %w: %v", vote.ErrMalformedDocument, err)
	}

	roll, err := strconv.Atoi(strings.TrimSpace(doc.VoteNumber))
	if err != nil || roll <= 0 {
		return nil, fmt.Errorf("senate roll call: vote_number %q: %w", doc.VoteNumber, vote.ErrMalformedDocument)
	}

	date, err := legis.ParseDate(doc.VoteDate)
	if err != nil {
		return nil, fmt.Errorf("senate roll call %d: vote_date %q: %w", roll, doc.VoteDate, vote.ErrMalformedDocument)
	}

	congress := leadingInt(doc.Congress)
	question := strings.TrimSpace(doc.QuestionText)
	if question == "" {
		question = strings.TrimSpace(doc.Question)
	}

	ref := legis.VoteRef{Chamber: legis.ChamberSenate, Date: date, Roll: roll}

	nv := &vote.NormalizedVote{
		Key:      ref.Key(),
		Chamber:  legis.ChamberSenate,
		Congress: congress,
		Session:  leadingInt(doc.Session),
		Roll:     roll,
		Date:     date,
		Question: question,
		Result:   strings.TrimSpace(doc.Result),
		Counts: vote.Counts{
			Yea:       doc.Count.Yeas,
			Nay:       doc.Count.Nays,
			Present:   doc.Count.Present,
			NotVoting: doc.Count.Absent,
		},
	}

	billCongress := leadingInt(doc.Document.Congress)
	if billCongress == 0 {
		billCongress = congress
	}
	attachBill(nv, senateBillField(doc.Document), billCongress)

	nv.Members = make([]vote.MemberPosition, 0, len(doc.Members))
	for _, m := range doc.Members {
		id := strings.TrimSpace(m.LisID)
		if id == "" {
			id = strings.TrimSpace(m.LastName)
		}
		if id == "" {
			continue
		}
		nv.Members = append(nv.Members, vote.MemberPosition{
			MemberID: id,
			Position: vote.NormalizePosition(m.VoteCast),
		})
	}

	return nv, nil
}

// senateBillField joins the document type/number pair into one raw bill
// reference. Non-bill documents (nominations, treaty documents) yield a
// string the normalizer rejects, which pushes extraction to the question
// text.
func senateBillField(d senateDocumentRef) string {
	t := strings.TrimSpace(d.Type)
	n := strings.TrimSpace(d.Number)
	if t == "" || n == "" {
		return ""
	}
	return t + " " + n
}
