package goutmp

import (
	"github.com/d21d3q/goutmp/internal/options"
	"github.com/d21d3q/goutmp/internal/record"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// Encoding names the transcoding applied to text fields: "raw" (default),
	// "latin1" or "utf8".
	Encoding string
}

func (opts DecodeOptions) toInternal() ([]record.ReaderOption, error) {
	enc, err := options.ParseTextEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return []record.ReaderOption{record.WithTextEncoding(enc)}, nil
}
