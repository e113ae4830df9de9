package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Format selects how a Report is written
type Format string

const (
	// FormatTable is the styled terminal table
	FormatTable Format = "table"
	// FormatJSON is the report as indented JSON
	FormatJSON Format = "json"
	// FormatCSV is a header line followed by one line per row
	FormatCSV Format = "csv"
)

// ParseFormat accepts a format name case-insensitively; empty selects the table
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write renders the report to w in the given format
func Write(w io.Writer, format Format, report Report) error {
	var err error

	switch format {
	case FormatTable, "":
		err = writeTable(w, report)
	case FormatJSON:
		err = writeJSON(w, report)
	case FormatCSV:
		err = writeCSV(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	// machine formats keep their shape, the notice goes to the log instead
	if format != FormatTable && format != "" && len(report.Rows) == 0 {
		log.Info().Str("domain", report.Domain).Str("format", string(format)).Msg(NoResultsMessage)
	}

	return nil
}

// WriteFile renders the report into path, replacing any existing file
func WriteFile(path string, format Format, report Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if err := Write(f, format, report); err != nil {
		f.Close() //nolint:errcheck // the write error is the one worth reporting

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	return nil
}
