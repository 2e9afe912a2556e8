// Package export serializes resolution logs for downstream consumers.
package export

import (
	"fmt"
	"sort"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatJSON produces an indented JSON array of log entries.
	FormatJSON Format = "json"

	// FormatJSONL produces one JSON log entry per line.
	FormatJSONL Format = "jsonl"

	// FormatCSV produces comma-separated rows, one per log entry.
	FormatCSV Format = "csv"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - indented array of log entries",
	},
	FormatJSONL: {
		Name:        FormatJSONL,
		MIMEType:    "application/x-ndjson",
		Extension:   ".jsonl",
		Description: "JSON Lines - one log entry per line",
	},
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "CSV - one row per log entry",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	format := Format(name)
	if _, ok := FormatRegistry[format]; !ok {
		return "", fmt.Errorf("unsupported format: %s (supported: %v)", name, FormatNames())
	}
	return format, nil
}

// FormatNames returns the supported format names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(FormatRegistry))
	for name := range FormatRegistry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
