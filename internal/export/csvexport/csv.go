package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/d21d3q/goutmp/internal/export"
	"github.com/d21d3q/goutmp/internal/record"
)

func init() {
	export.Register(Exporter{})
}

// Exporter writes the header row followed by one row per record. Fields
// containing the delimiter, a quote or a line break are quoted.
type Exporter struct{}

// Name returns the format name.
func (Exporter) Name() string { return "csv" }

// Extension returns the file suffix.
func (Exporter) Extension() string { return "csv" }

// Write implements export.Exporter.
func (Exporter) Write(w io.Writer, records []record.Record, opts export.Options) error {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	if err := cw.Write(export.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(export.Row(rec, opts)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
