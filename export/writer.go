package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/capitolstream/rollcall/resolver"
)

// Writer serializes resolution logs in a fixed format.
type Writer struct {
	format Format
}

// NewWriter creates a writer for the named format.
func NewWriter(name string) (*Writer, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return &Writer{format: format}, nil
}

// Format returns the writer's format.
func (w *Writer) Format() Format {
	return w.format
}

// Write serializes log to out.
func (w *Writer) Write(out io.Writer, log *resolver.Log) error {
	switch w.format {
	case FormatJSON:
		return log.WriteJSON(out)
	case FormatJSONL:
		return writeJSONL(out, log)
	case FormatCSV:
		return writeCSV(out, log)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

// WriteFile serializes log to path, creating parent directories as needed.
func (w *Writer) WriteFile(path string, log *resolver.Log) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := w.Write(f, log); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSONL(out io.Writer, log *resolver.Log) error {
	enc := json.NewEncoder(out)
	for _, entry := range log.Entries() {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode log entry %s: %w", entry.ID, err)
		}
	}
	return nil
}

// csvHeader lists the CSV columns in output order.
var csvHeader = []string{
	"vote_key", "bill_key", "strategy", "confidence", "reason",
	"date_offset", "motion_score", "amendment", "text_urls",
}

func writeCSV(out io.Writer, log *resolver.Log) error {
	cw := csv.NewWriter(out)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range log.Entries() {
		if err := cw.Write(csvRow(entry.Result)); err != nil {
			return fmt.Errorf("write csv row %s: %w", entry.Result.VoteKey, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(res resolver.Result) []string {
	amendment := ""
	if res.Amendment != nil {
		amendment = res.Amendment.String()
	}
	return []string{
		string(res.VoteKey),
		string(res.BillKey),
		string(res.Strategy),
		strconv.FormatFloat(res.Confidence, 'g', -1, 64),
		res.Reason,
		strconv.Itoa(res.DateOffset),
		strconv.FormatFloat(res.MotionScore, 'g', -1, 64),
		amendment,
		strings.Join(res.TextURLs, "|"),
	}
}
