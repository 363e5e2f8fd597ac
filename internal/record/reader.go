package record

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"

	"github.com/d21d3q/goutmp/pkg/errclass"
)

const maxPrealloc = 1 << 16

// Reader decodes a whole byte source of fixed-size records.
type Reader struct {
	src io.Reader
	dec Decoder
	buf []byte
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithTextEncoding transcodes text fields with enc.
func WithTextEncoding(enc encoding.Encoding) ReaderOption {
	return func(r *Reader) { r.dec.Text = enc }
}

// NewReader returns a Reader over src.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{src: src, buf: make([]byte, Size)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadAll validates that size is a whole number of records and then decodes
// exactly size bytes of src in file order.
//
// A size that is not a whole number of records is reported before anything is
// read. Bytes past size are left unread; a source shorter than size is a size
// mismatch. A record with an invalid login type stops the pass; the records
// decoded before it are returned alongside the error and must be treated as
// rejected by callers that export whole files.
func (r *Reader) ReadAll(size int64) ([]Record, error) {
	if size < 0 {
		return nil, errclass.ErrFileSizeMismatch.WithMessagef("negative source size %d", size)
	}
	if rem := size % int64(Size); rem != 0 {
		return nil, errclass.ErrFileSizeMismatch.WithMessagef("%d bytes is not a multiple of record size %d (%d trailing bytes)", size, Size, rem)
	}
	src := io.LimitReader(r.src, size)
	records := make([]Record, 0, min(size/int64(Size), maxPrealloc))
	for i := 0; ; i++ {
		offset := int64(i) * int64(Size)
		_, err := io.ReadFull(src, r.buf)
		if errors.Is(err, io.EOF) {
			if offset < size {
				return records, errclass.ErrFileSizeMismatch.WithMessagef("source ended at offset %d, expected %d bytes", offset, size)
			}
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return records, errclass.ErrFileSizeMismatch.WithMessagef("truncated record %d at offset %d", i, offset)
		}
		if err != nil {
			return records, errclass.ErrSourceUnavailable.WithMessagef("read record %d at offset %d", i, offset).Wrap(err)
		}
		rec, err := r.dec.Decode(r.buf)
		if err != nil {
			return records, fmt.Errorf("record %d at offset %d: %w", i, offset, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
