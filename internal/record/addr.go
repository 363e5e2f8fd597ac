package record

import (
	"encoding/binary"
	"math/bits"
	"net/netip"
)

// IPv4 renders an ut_addr_v6 word as a dotted quad. The word holds the address
// in network byte order, so it is byte-swapped before the octets are taken most
// significant first.
func IPv4(word uint32) string {
	var octets [4]byte
	binary.BigEndian.PutUint32(octets[:], bits.ReverseBytes32(word))
	return netip.AddrFrom4(octets).String()
}
