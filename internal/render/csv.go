package render

import (
	"encoding/csv"
	"io"
)

// writeCSV writes the header even when there are no rows
func writeCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Headers); err != nil {
		return err
	}

	for _, r := range report.Rows {
		if err := writer.Write(r.Fields()); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}
