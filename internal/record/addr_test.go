package record

import (
	"encoding/binary"
	"math/rand"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIPv4(t *testing.T) {
	cases := map[uint32]string{
		0x0100007F: "127.0.0.1",
		0x00000000: "0.0.0.0",
		0xFFFFFFFF: "255.255.255.255",
		0x0971CBCB: "203.203.113.9",
		0x0A01A8C0: "192.168.1.10",
	}
	for word, want := range cases {
		require.Equal(t, want, IPv4(word), "word 0x%08X", word)
	}
}

func TestIPv4RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	words := []uint32{0, 1, 0x80000000, 0x0100007F, 0xFFFFFFFF}
	for i := 0; i < 1000; i++ {
		words = append(words, rng.Uint32())
	}
	for _, word := range words {
		addr, err := netip.ParseAddr(IPv4(word))
		require.NoError(t, err)
		octets := addr.As4()
		var stored [4]byte
		binary.LittleEndian.PutUint32(stored[:], word)
		require.Equal(t, stored, octets, "word 0x%08X", word)
		require.Equal(t, word, binary.LittleEndian.Uint32(octets[:]))
	}
}
