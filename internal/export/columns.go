// Package export renders decoded login records into tabular exports.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/d21d3q/goutmp/internal/record"
)

// TimeFormat selects how the record timestamp is rendered.
type TimeFormat string

const (
	// TimeEpoch writes tv_sec unchanged.
	TimeEpoch TimeFormat = "epoch"
	// TimeRFC3339 writes UTC with microseconds.
	TimeRFC3339 TimeFormat = "rfc3339"
	// TimeHuman writes day-first UTC wall time.
	TimeHuman TimeFormat = "human"
)

const (
	rfc3339Micro = "2006-01-02T15:04:05.000000Z07:00"
	humanLayout  = "02-01-2006 15:04:05"
)

// ParseTimeFormat validates a time format name. Empty selects TimeEpoch.
func ParseTimeFormat(name string) (TimeFormat, error) {
	switch f := TimeFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return TimeEpoch, nil
	case TimeEpoch, TimeRFC3339, TimeHuman:
		return f, nil
	default:
		return "", fmt.Errorf("unknown time format %q (want %s, %s or %s)", name, TimeEpoch, TimeRFC3339, TimeHuman)
	}
}

// Options tunes rendering.
type Options struct {
	Delimiter  rune
	TimeFormat TimeFormat
}

// DefaultOptions matches the historical export: comma separated, epoch seconds.
func DefaultOptions() Options {
	return Options{Delimiter: ',', TimeFormat: TimeEpoch}
}

// Header is the fixed column header of the tabular export.
var Header = []string{
	"Type_of_login", "PID", "Terminal", "Id", "User", "Host",
	"Exit_status", "Session", "Time", "IPv4",
}

// Row renders rec in Header order.
func Row(rec record.Record, opts Options) []string {
	return []string{
		rec.Type.String(),
		strconv.FormatUint(uint64(rec.PID), 10),
		rec.Line,
		rec.ID,
		rec.User,
		rec.Host,
		strconv.Itoa(int(rec.Exit.Termination)),
		strconv.FormatUint(uint64(rec.Session), 10),
		FormatTime(rec, opts.TimeFormat),
		rec.IPv4(),
	}
}

// FormatTime renders the record timestamp.
func FormatTime(rec record.Record, f TimeFormat) string {
	switch f {
	case TimeRFC3339:
		return rec.Time().UTC().Format(rfc3339Micro)
	case TimeHuman:
		return time.Unix(int64(rec.Sec), 0).UTC().Format(humanLayout)
	default:
		return strconv.FormatInt(int64(rec.Sec), 10)
	}
}
