// Package reader parses raw per-chamber roll-call documents into the
// normalized vote shape. Each chamber ships its own XML schema; readers
// register against the schema's root element and a registry routes
// documents to the right one.
package reader

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/capitolstream/rollcall/legis"
	"github.com/capitolstream/rollcall/vote"
)

// Reader defines the interface for chamber-specific vote readers.
type Reader interface {
	// Parse parses a raw document into a normalized vote.
	Parse(content []byte) (*vote.NormalizedVote, error)

	// CanRead returns true if this reader handles the given root element.
	CanRead(rootElement string) bool

	// Chamber returns the chamber this reader covers.
	Chamber() legis.Chamber
}

// Registry manages chamber readers.
type Registry struct {
	mu      sync.RWMutex
	readers []Reader
}

// DefaultRegistry is the global reader registry with both chambers.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a reader registry with the default chamber readers.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewHouseReader())
	r.Register(NewSenateReader())
	return r
}

// Register adds a reader to the registry.
func (r *Registry) Register(rd Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers = append(r.readers, rd)
}

// For returns the reader that handles the document's root element, or nil
// when no reader claims it.
func (r *Registry) For(content []byte) Reader {
	root := RootElement(content)
	if root == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rd := range r.readers {
		if rd.CanRead(root) {
			return rd
		}
	}
	return nil
}

// Parse routes a document to the appropriate reader and parses it.
func (r *Registry) Parse(content []byte) (*vote.NormalizedVote, error) {
	rd := r.For(content)
	if rd == nil {
		return nil, fmt.Errorf("no reader for root element %q: %w", RootElement(content), vote.ErrMalformedDocument)
	}
	return rd.Parse(content)
}

// Chambers returns the chambers with a registered reader.
func (r *Registry) Chambers() []legis.Chamber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chambers := make([]legis.Chamber, 0, len(r.readers))
	for _, rd := range r.readers {
		chambers = append(chambers, rd.Chamber())
	}
	return chambers
}

// RootElement returns the local name of a document's first XML element, or
// "" when the content holds none.
func RootElement(content []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local
		}
	}
}

// attachBill resolves a vote's bill reference: the document's explicit bill
// field first, the question text second. Sets Bill, and BillKey when the
// congress is known.
func attachBill(nv *vote.NormalizedVote, explicit string, congress int) {
	bill := legis.NormalizeBillID(explicit, congress)
	if bill == nil {
		if bill = legis.ExtractBillReference(nv.Question); bill != nil {
			bill.Congress = congress
		}
	}
	if bill == nil {
		return
	}

	nv.Bill = bill
	if key, err := bill.Key(); err == nil {
		nv.BillKey = key
	}
}

// leadingInt parses the leading digit run of a field like "2nd" or "118".
// Returns 0 when the field holds no leading digits.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}
