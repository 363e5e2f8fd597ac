package record

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeFixedText(t *testing.T) {
	cases := []struct {
		name  string
		in    []byte
		width int
		want  string
	}{
		{name: "terminated", in: []byte("pts/0\x00\x00\x00"), width: 8, want: "pts/0"},
		{name: "terminator at zero", in: []byte{0, 'x', 'y'}, width: 3, want: ""},
		{name: "garbage after terminator", in: []byte("ab\x00cd"), width: 5, want: "ab"},
		{name: "unterminated", in: []byte("tty1"), width: 4, want: "tty1"},
		{name: "width shorter than buffer", in: []byte("tty1tty2"), width: 4, want: "tty1"},
		{name: "width longer than buffer", in: []byte("ab"), width: 10, want: "ab"},
		{name: "negative width", in: []byte("ab"), width: -1, want: ""},
		{name: "raw high bytes", in: []byte{0xE9, 0xFF, 0x00}, width: 3, want: "\xe9\xff"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DecodeFixedText(tc.in, tc.width))
		})
	}
}

func TestDecodeFixedTextFullWindow(t *testing.T) {
	for _, width := range []int{IDSize, LineSize, NameSize, HostSize} {
		in := bytes.Repeat([]byte{'z'}, width)
		require.Len(t, DecodeFixedText(in, width), width)
	}
}

func TestDecodeFixedTextTerminatorOffsets(t *testing.T) {
	for k := 0; k < LineSize; k++ {
		in := bytes.Repeat([]byte{'a'}, LineSize)
		in[k] = 0
		require.Len(t, DecodeFixedText(in, LineSize), k)
	}
}

func TestTranscode(t *testing.T) {
	in := []byte{'J', 0xF6, 'r', 'g', 0x00, 'x'}

	got, err := transcode(nil, in, len(in))
	require.NoError(t, err)
	require.Equal(t, "J\xf6rg", got)

	got, err = transcode(encoding.Nop, in, len(in))
	require.NoError(t, err)
	require.Equal(t, "J\xf6rg", got)

	got, err = transcode(charmap.ISO8859_1, in, len(in))
	require.NoError(t, err)
	require.Equal(t, "Jörg", got)

	got, err = transcode(unicode.UTF8, in, len(in))
	require.NoError(t, err)
	require.Equal(t, "J\uFFFDrg", got)
}
