package record

import (
	"bytes"

	"golang.org/x/text/encoding"
)

// DecodeFixedText returns the bytes of a C char array up to the first NUL, or
// all width bytes when the array is not terminated. Bytes are copied verbatim.
func DecodeFixedText(b []byte, width int) string {
	if width > len(b) {
		width = len(b)
	}
	if width < 0 {
		width = 0
	}
	window := b[:width]
	if i := bytes.IndexByte(window, 0); i >= 0 {
		window = window[:i]
	}
	return string(window)
}

func transcode(enc encoding.Encoding, b []byte, width int) (string, error) {
	text := DecodeFixedText(b, width)
	if enc == nil || text == "" {
		return text, nil
	}
	return enc.NewDecoder().String(text)
}
