package options

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

func TestParseTextEncoding(t *testing.T) {
	cases := map[string]encoding.Encoding{
		"":           encoding.Nop,
		"raw":        encoding.Nop,
		" Latin1 ":   charmap.ISO8859_1,
		"ISO-8859-1": charmap.ISO8859_1,
		"utf8":       xunicode.UTF8,
		"UTF-8":      xunicode.UTF8,
	}
	for in, want := range cases {
		got, err := ParseTextEncoding(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestParseTextEncodingUnknown(t *testing.T) {
	_, err := ParseTextEncoding("ebcdic")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ebcdic")
}

func TestParseDelimiter(t *testing.T) {
	cases := map[string]rune{
		"":    ',',
		",":   ',',
		";":   ';',
		"|":   '|',
		"tab": '\t',
		`\t`:  '\t',
		"\t":  '\t',
	}
	for in, want := range cases {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestParseDelimiterInvalid(t *testing.T) {
	for _, in := range []string{";;", `"`, "\n", "\r", "\xff"} {
		_, err := ParseDelimiter(in)
		require.Error(t, err, "%q", in)
	}
}
