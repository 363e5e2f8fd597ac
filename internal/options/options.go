package options

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Text encoding names accepted by ParseTextEncoding.
const (
	EncodingRaw    = "raw"
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

var textEncodings = map[string]encoding.Encoding{
	EncodingRaw:    encoding.Nop,
	"":             encoding.Nop,
	EncodingLatin1: charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	EncodingUTF8:   xunicode.UTF8,
	"utf-8":        xunicode.UTF8,
}

// ParseTextEncoding maps a user supplied encoding name to the transcoder
// applied to fixed-width text fields.
func ParseTextEncoding(input string) (encoding.Encoding, error) {
	name := strings.ToLower(stripWhitespace(input))
	enc, ok := textEncodings[name]
	if !ok {
		return nil, fmt.Errorf("unknown text encoding %q (want %s, %s or %s)", input, EncodingRaw, EncodingLatin1, EncodingUTF8)
	}
	return enc, nil
}

// ParseDelimiter decodes a single-character field separator. "tab" and `\t`
// select a tab.
func ParseDelimiter(input string) (rune, error) {
	switch input {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(input)
	if size != len(input) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", input)
	}
	if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", input)
	}
	return r, nil
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
