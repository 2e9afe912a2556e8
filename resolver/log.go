package resolver

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// LogEntry is one timestamped resolution record.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Result    Result    `json:"result"`
}

// Log is an append-only, in-memory resolution log. A log belongs to one
// resolver at a time and is not synchronized; parallel workers own their
// own logs and Merge them afterward.
type Log struct {
	entries []LogEntry
}

// NewLog creates an empty resolution log.
func NewLog() *Log {
	return &Log{}
}

// Append records a result with a fresh ULID and timestamp.
func (l *Log) Append(res Result) LogEntry {
	e := LogEntry{
		ID:        ulid.Make().String(),
		Timestamp: time.Now().UTC(),
		Result:    res,
	}
	l.entries = append(l.entries, e)
	return e
}

// Merge appends every entry of other, preserving order. The other log is
// left unchanged.
func (l *Log) Merge(other *Log) {
	if other == nil {
		return
	}
	l.entries = append(l.entries, other.entries...)
}

// Entries returns a copy of the log in append order.
func (l *Log) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of logged resolutions.
func (l *Log) Len() int {
	return len(l.entries)
}

// Unresolved returns the entries whose strategy is none, in append order.
func (l *Log) Unresolved() []LogEntry {
	var out []LogEntry
	for _, e := range l.entries {
		if !e.Result.Resolved() {
			out = append(out, e)
		}
	}
	return out
}

// StrategyStats aggregates one strategy's share of the log.
type StrategyStats struct {
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// Stats aggregates a resolution log. Per-strategy counts sum to Total, and
// Resolved equals Total minus the none count.
type Stats struct {
	Total           int                        `json:"total"`
	Resolved        int                        `json:"resolved"`
	ResolutionRate  float64                    `json:"resolution_rate"`
	ByStrategy      map[Strategy]StrategyStats `json:"by_strategy"`
	MissingTextURLs int                        `json:"missing_text_urls"`
}

// Stats computes aggregate statistics over the log. Rates are percentages
// of the total; an empty log yields all zeros.
func (l *Log) Stats() Stats {
	s := Stats{ByStrategy: make(map[Strategy]StrategyStats)}
	s.Total = len(l.entries)

	counts := make(map[Strategy]int)
	for _, e := range l.entries {
		counts[e.Result.Strategy]++
		if e.Result.Resolved() {
			s.Resolved++
			if len(e.Result.TextURLs) == 0 {
				s.MissingTextURLs++
			}
		}
	}

	for _, st := range Strategies() {
		c, ok := counts[st]
		if !ok {
			continue
		}
		stat := StrategyStats{Count: c}
		if s.Total > 0 {
			stat.Rate = float64(c) / float64(s.Total) * 100
		}
		s.ByStrategy[st] = stat
	}
	if s.Total > 0 {
		s.ResolutionRate = float64(s.Resolved) / float64(s.Total) * 100
	}
	return s
}

// WriteJSON writes the log as an indented JSON array. An empty log writes
// an empty array, not null.
func (l *Log) WriteJSON(w io.Writer) error {
	entries := l.entries
	if entries == nil {
		entries = []LogEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode resolution log: %w", err)
	}
	return nil
}

// ReadLog reads a log previously written by WriteJSON. Entry IDs and
// timestamps are preserved rather than regenerated.
func ReadLog(r io.Reader) (*Log, error) {
	var entries []LogEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode resolution log: %w", err)
	}
	return &Log{entries: entries}, nil
}
