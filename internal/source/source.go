// Package source opens utmp, wtmp and btmp files for decoding, including
// rotated logs compressed with gzip or zstd.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/d21d3q/goutmp/internal/record"
	"github.com/d21d3q/goutmp/pkg/errclass"
)

// Compression identifies how a source is stored on disk.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// MaxInflatedSize caps the decompressed length of a compressed source.
var MaxInflatedSize int64 = 1 << 30

var errInflateLimit = errors.New("decompressed data exceeds limit")

// Source is an opened byte source with a known decoded length.
type Source struct {
	Name        string
	Size        int64
	Compression Compression

	r      io.Reader
	closer io.Closer
}

func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close releases the underlying file.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// Open opens path. Compressed files are inflated into memory so that Size
// reports the decompressed length.
//
// A record whose first bytes happen to match a compression magic is not a
// compressed file: when inflating fails and the file is a whole number of
// records long, it is opened as plain data instead.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errclass.ErrSourceUnavailable.WithMessagef("open %s", path).Wrap(err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errclass.ErrSourceUnavailable.WithMessagef("stat %s", path).Wrap(err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errclass.ErrSourceUnavailable.WithMessagef("%s is a directory", path)
	}

	br := bufio.NewReader(f)
	kind := Detect(br)
	if kind == None {
		return plain(path, f, br, info.Size()), nil
	}
	data, err := inflate(kind, br)
	if err == nil {
		f.Close()
		return &Source{Name: path, Size: int64(len(data)), Compression: kind, r: bytes.NewReader(data)}, nil
	}
	if !errors.Is(err, errInflateLimit) && info.Size()%int64(record.Size) == 0 {
		if _, serr := f.Seek(0, io.SeekStart); serr == nil {
			br.Reset(f)
			return plain(path, f, br, info.Size()), nil
		}
	}
	f.Close()
	return nil, errclass.ErrSourceUnavailable.WithMessagef("decompress %s (%s)", path, kind).Wrap(err)
}

func plain(path string, f *os.File, br *bufio.Reader, size int64) *Source {
	return &Source{Name: path, Size: size, Compression: None, r: br, closer: f}
}

// Detect peeks at the leading bytes of br without consuming them.
func Detect(br *bufio.Reader) Compression {
	if head, _ := br.Peek(len(zstdMagic)); bytes.HasPrefix(head, zstdMagic) {
		return Zstd
	}
	if head, _ := br.Peek(len(gzipMagic)); bytes.HasPrefix(head, gzipMagic) {
		return Gzip
	}
	return None
}

func inflate(kind Compression, r io.Reader) ([]byte, error) {
	switch kind {
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return readLimited(zr)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return readLimited(dec)
	default:
		return nil, fmt.Errorf("unsupported compression %q", kind)
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInflatedSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxInflatedSize {
		return nil, fmt.Errorf("%w (%d bytes)", errInflateLimit, MaxInflatedSize)
	}
	return data, nil
}
