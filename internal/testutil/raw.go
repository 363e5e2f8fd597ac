package testutil

import "encoding/binary"

// RecordSize is the glibc struct utmp size on little-endian 64-bit Linux.
const RecordSize = 384

// Byte offsets of struct utmp fields.
const (
	offType     = 0
	offPID      = 4
	offLine     = 8
	offID       = 40
	offUser     = 44
	offHost     = 76
	offExitTerm = 332
	offExitCode = 334
	offSession  = 336
	offSec      = 340
	offUsec     = 344
	offAddr     = 348
)

// RawRecord describes a struct utmp by field. Text longer than its field is
// cut at the field width, leaving it without a terminator.
type RawRecord struct {
	Type            int16
	PID             uint32
	Line            string
	ID              string
	User            string
	Host            string
	ExitTermination int16
	ExitCode        int16
	Session         uint32
	Sec             int32
	Usec            int32
	Addr            [4]uint32
}

// Bytes lays the record out at its on-disk offsets.
func (r RawRecord) Bytes() []byte {
	buf := make([]byte, RecordSize)
	le := binary.LittleEndian
	le.PutUint16(buf[offType:], uint16(r.Type))
	le.PutUint32(buf[offPID:], r.PID)
	copy(buf[offLine:offLine+32], r.Line)
	copy(buf[offID:offID+4], r.ID)
	copy(buf[offUser:offUser+32], r.User)
	copy(buf[offHost:offHost+256], r.Host)
	le.PutUint16(buf[offExitTerm:], uint16(r.ExitTermination))
	le.PutUint16(buf[offExitCode:], uint16(r.ExitCode))
	le.PutUint32(buf[offSession:], r.Session)
	le.PutUint32(buf[offSec:], uint32(r.Sec))
	le.PutUint32(buf[offUsec:], uint32(r.Usec))
	for i, w := range r.Addr {
		le.PutUint32(buf[offAddr+4*i:], w)
	}
	return buf
}

// Concat lays out records back to back.
func Concat(records ...RawRecord) []byte {
	out := make([]byte, 0, len(records)*RecordSize)
	for _, r := range records {
		out = append(out, r.Bytes()...)
	}
	return out
}
