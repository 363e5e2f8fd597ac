// Package record decodes utmp, wtmp and btmp login-accounting records.
package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/text/encoding"
)

// ExitStatus is ut_exit. It is only meaningful for DeadProcess records.
type ExitStatus struct {
	Termination int16
	Code        int16
}

// Record is one decoded login-accounting entry.
type Record struct {
	Type    LoginType
	PID     uint32
	Line    string
	ID      string
	User    string
	Host    string
	Exit    ExitStatus
	Session uint32
	Sec     int32
	Usec    int32
	// Addr is ut_addr_v6. IPv4 peers only use Addr[0].
	Addr [4]uint32
}

// Time returns the record timestamp.
func (r Record) Time() time.Time {
	return time.Unix(int64(r.Sec), int64(r.Usec)*int64(time.Microsecond))
}

// IPv4 renders Addr[0] as a dotted quad.
func (r Record) IPv4() string {
	return IPv4(r.Addr[0])
}

// Decoder converts raw records. The zero value copies text bytes verbatim.
type Decoder struct {
	// Text, when set, transcodes the fixed-width text fields after the
	// terminator scan.
	Text encoding.Encoding
}

// Decode converts raw with the zero Decoder.
func Decode(raw []byte) (Record, error) {
	return Decoder{}.Decode(raw)
}

// Decode interprets exactly one raw record. Only the login type is range
// checked; every other field is taken as stored.
func (d Decoder) Decode(raw []byte) (Record, error) {
	if len(raw) != Size {
		return Record{}, fmt.Errorf("raw record must be %d bytes, got %d", Size, len(raw))
	}
	var rr rawRecord
	if err := binary.Read(bytes.NewReader(raw), byteOrder, &rr); err != nil {
		return Record{}, fmt.Errorf("read raw record: %w", err)
	}
	typ, err := ParseLoginType(rr.Type)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Type:    typ,
		PID:     rr.PID,
		Exit:    ExitStatus{Termination: rr.Exit.Termination, Code: rr.Exit.Code},
		Session: rr.Session,
		Sec:     rr.TV.Sec,
		Usec:    rr.TV.Usec,
		Addr:    rr.Addr,
	}
	texts := []struct {
		name  string
		dst   *string
		src   []byte
		width int
	}{
		{"ut_line", &rec.Line, rr.Line[:], LineSize},
		{"ut_id", &rec.ID, rr.ID[:], IDSize},
		{"ut_user", &rec.User, rr.User[:], NameSize},
		{"ut_host", &rec.Host, rr.Host[:], HostSize},
	}
	for _, f := range texts {
		s, err := transcode(d.Text, f.src, f.width)
		if err != nil {
			return Record{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
		*f.dst = s
	}
	return rec, nil
}
