package record

import "encoding/binary"

// Widths of the fixed text fields.
const (
	LineSize = 32
	IDSize   = 4
	NameSize = 32
	HostSize = 256
)

// rawRecord mirrors struct utmp as laid out on disk by glibc on little-endian
// platforms. ut_pid is 4-byte aligned in C, hence the blank field after Type.
type rawRecord struct {
	Type    int16
	_       [2]byte
	PID     uint32
	Line    [LineSize]byte
	ID      [IDSize]byte
	User    [NameSize]byte
	Host    [HostSize]byte
	Exit    rawExitStatus
	Session uint32
	TV      rawTimeval
	Addr    [4]uint32
	_       [20]byte
}

type rawExitStatus struct {
	Termination int16
	Code        int16
}

type rawTimeval struct {
	Sec  int32
	Usec int32
}

// Size is the on-disk size of one record in bytes.
var Size = binary.Size(rawRecord{})

var byteOrder = binary.LittleEndian
