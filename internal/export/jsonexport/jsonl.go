package jsonexport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/d21d3q/goutmp/internal/export"
	"github.com/d21d3q/goutmp/internal/record"
)

func init() {
	export.Register(Exporter{})
}

// Exporter writes one JSON object per line. Unlike the CSV export it keeps
// the exit code and the microsecond part of the timestamp.
//
// Text fields are raw bytes from the file. Invalid UTF-8 is written as U+FFFD
// and control bytes as \u00XX escapes; use a latin1 text encoding to keep
// high bytes.
type Exporter struct{}

// Name returns the format name.
func (Exporter) Name() string { return "jsonl" }

// Extension returns the file suffix.
func (Exporter) Extension() string { return "jsonl" }

// Line is the JSON shape of one record.
type Line struct {
	Type            string `json:"type"`
	PID             uint32 `json:"pid"`
	Line            string `json:"line"`
	ID              string `json:"id"`
	User            string `json:"user"`
	Host            string `json:"host"`
	ExitTermination int16  `json:"exit_termination"`
	ExitCode        int16  `json:"exit_code"`
	Session         uint32 `json:"session"`
	// Time is epoch seconds as a number, or a formatted string.
	Time     any    `json:"time"`
	TimeUsec int32  `json:"time_usec"`
	IPv4     string `json:"ipv4"`
}

// NewLine converts rec for encoding.
func NewLine(rec record.Record, opts export.Options) Line {
	l := Line{
		Type:            rec.Type.String(),
		PID:             rec.PID,
		Line:            rec.Line,
		ID:              rec.ID,
		User:            rec.User,
		Host:            rec.Host,
		ExitTermination: rec.Exit.Termination,
		ExitCode:        rec.Exit.Code,
		Session:         rec.Session,
		TimeUsec:        rec.Usec,
		IPv4:            rec.IPv4(),
	}
	if opts.TimeFormat == "" || opts.TimeFormat == export.TimeEpoch {
		l.Time = rec.Sec
	} else {
		l.Time = export.FormatTime(rec, opts.TimeFormat)
	}
	return l
}

// Write implements export.Exporter.
func (Exporter) Write(w io.Writer, records []record.Record, opts export.Options) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if err := enc.Encode(NewLine(rec, opts)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return bw.Flush()
}
