// Package export serialises a finished report into text formats.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat marks a format with no formatter.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// UnsupportedFormatError names the rejected format.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFormat, e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Format is an export format name.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	// FormatPDF is recognised but not implemented yet.
	FormatPDF Format = "pdf"
)

// ParseFormat accepts json, csv, yaml and pdf, case-insensitively.
// pdf parses fine; it is Export that rejects it.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatYAML, FormatPDF:
		return f, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// ContentType is the MIME type to serve f with.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Extension is the file extension for f, without the dot.
func (f Format) Extension() string { return string(f) }
