// Package legis provides canonical identities for legislative entities:
// vote keys for roll-call events, bill keys for pieces of legislation,
// and the normalizer that maps raw bill-reference spellings onto them.
package legis

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chamber identifies an originating chamber.
type Chamber string

const (
	// ChamberHouse is the House of Representatives.
	ChamberHouse Chamber = "house"

	// ChamberSenate is the Senate.
	ChamberSenate Chamber = "senate"

	// ChamberUnknown marks records whose chamber cannot be determined.
	ChamberUnknown Chamber = ""
)

// ParseChamber normalizes a raw chamber name to a Chamber value.
func ParseChamber(raw string) (Chamber, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "house", "h", "house of representatives":
		return ChamberHouse, nil
	case "senate", "s":
		return ChamberSenate, nil
	default:
		return ChamberUnknown, fmt.Errorf("%w: unknown chamber %q", ErrInvalidInput, raw)
	}
}

// BillType identifies one of the eight federal bill types.
type BillType string

const (
	BillTypeHR      BillType = "hr"      // House bill
	BillTypeS       BillType = "s"       // Senate bill
	BillTypeHJRes   BillType = "hjres"   // House joint resolution
	BillTypeSJRes   BillType = "sjres"   // Senate joint resolution
	BillTypeHConRes BillType = "hconres" // House concurrent resolution
	BillTypeSConRes BillType = "sconres" // Senate concurrent resolution
	BillTypeHRes    BillType = "hres"    // House simple resolution
	BillTypeSRes    BillType = "sres"    // Senate simple resolution
)

// ParseBillType normalizes a raw bill-type spelling ("H.R.", "hconres",
// "SJR") to a BillType. Punctuation is stripped and case ignored.
func ParseBillType(raw string) (BillType, error) {
	t, ok := billTypeAliases[stripTypeToken(strings.ToLower(raw))]
	if !ok {
		return "", fmt.Errorf("%w: unknown bill type %q", ErrInvalidInput, raw)
	}
	return t, nil
}

// VoteKey is the canonical identity of a roll-call event, rendered as
// "chamber:YYYY-MM-DD:roll". Two inputs denoting the same real-world roll
// call always produce the identical key; beyond that the key is opaque.
type VoteKey string

// BillKey is the canonical identity of a bill, rendered as
// "congress:type:number".
type BillKey string

// VoteRef is the parsed form of a VoteKey.
type VoteRef struct {
	Chamber Chamber   `json:"chamber"`
	Date    time.Time `json:"date"`
	Roll    int       `json:"roll"`
}

// Key renders the canonical VoteKey for the reference.
func (r VoteRef) Key() VoteKey {
	return VoteKey(fmt.Sprintf("%s:%s:%d", r.Chamber, r.Date.Format(DateLayout), r.Roll))
}

// BillRef is the parsed form of a BillKey.
type BillRef struct {
	Congress int      `json:"congress"`
	Type     BillType `json:"type"`
	Number   int      `json:"number"`
}

// Key renders the canonical BillKey for the reference.
func (r BillRef) Key() BillKey {
	return BillKey(fmt.Sprintf("%d:%s:%d", r.Congress, r.Type, r.Number))
}

// MakeVoteKey builds the canonical vote key from a chamber name, a date in
// any parseable form, and a roll number. The date is normalized to a
// calendar day; time-of-day is discarded.
func MakeVoteKey(chamber, date string, roll int) (VoteKey, error) {
	ch, err := ParseChamber(chamber)
	if err != nil {
		return "", err
	}
	day, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	if roll <= 0 {
		return "", fmt.Errorf("%w: roll number must be positive, got %d", ErrInvalidInput, roll)
	}
	return VoteRef{Chamber: ch, Date: day, Roll: roll}.Key(), nil
}

// ParseVoteKey splits a vote key back into its normalized parts.
func ParseVoteKey(key VoteKey) (VoteRef, error) {
	parts := strings.Split(string(key), ":")
	if len(parts) != 3 {
		return VoteRef{}, fmt.Errorf("%w: vote key %q must have three segments", ErrInvalidInput, key)
	}
	ch, err := ParseChamber(parts[0])
	if err != nil {
		return VoteRef{}, err
	}
	day, err := time.Parse(DateLayout, parts[1])
	if err != nil {
		return VoteRef{}, fmt.Errorf("%w: vote key date %q", ErrInvalidInput, parts[1])
	}
	roll, err := strconv.Atoi(parts[2])
	if err != nil || roll <= 0 {
		return VoteRef{}, fmt.Errorf("%w: vote key roll %q", ErrInvalidInput, parts[2])
	}
	return VoteRef{Chamber: ch, Date: day.UTC(), Roll: roll}, nil
}

// MakeBillKey builds the canonical bill key from a congress number, a raw
// bill-type spelling, and a bill number.
func MakeBillKey(congress int, billType string, number int) (BillKey, error) {
	if congress <= 0 {
		return "", fmt.Errorf("%w: congress must be positive, got %d", ErrInvalidInput, congress)
	}
	t, err := ParseBillType(billType)
	if err != nil {
		return "", err
	}
	if number <= 0 {
		return "", fmt.Errorf("%w: bill number must be positive, got %d", ErrInvalidInput, number)
	}
	return BillRef{Congress: congress, Type: t, Number: number}.Key(), nil
}

// ParseBillKey splits a bill key back into its normalized parts.
func ParseBillKey(key BillKey) (BillRef, error) {
	parts := strings.Split(string(key), ":")
	if len(parts) != 3 {
		return BillRef{}, fmt.Errorf("%w: bill key %q must have three segments", ErrInvalidInput, key)
	}
	congress, err := strconv.Atoi(parts[0])
	if err != nil || congress <= 0 {
		return BillRef{}, fmt.Errorf("%w: bill key congress %q", ErrInvalidInput, parts[0])
	}
	t, err := ParseBillType(parts[1])
	if err != nil {
		return BillRef{}, err
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil || number <= 0 {
		return BillRef{}, fmt.Errorf("%w: bill key number %q", ErrInvalidInput, parts[2])
	}
	return BillRef{Congress: congress, Type: t, Number: number}, nil
}
