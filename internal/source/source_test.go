package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/d21d3q/goutmp/internal/record"
	"github.com/d21d3q/goutmp/internal/testutil"
	"github.com/d21d3q/goutmp/pkg/errclass"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readSource(t *testing.T, path string) (*Source, []byte) {
	t.Helper()
	src, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	data, err := io.ReadAll(src)
	require.NoError(t, err)
	return src, data
}

func TestOpenPlain(t *testing.T) {
	want := testutil.LoadHex(t, "utmp/wtmp_session.hex")
	src, got := readSource(t, writeFile(t, "wtmp", want))
	require.Equal(t, None, src.Compression)
	require.Equal(t, int64(len(want)), src.Size)
	require.Equal(t, want, got)
}

func TestOpenEmpty(t *testing.T) {
	src, got := readSource(t, writeFile(t, "btmp", nil))
	require.Equal(t, None, src.Compression)
	require.Zero(t, src.Size)
	require.Empty(t, got)
}

func TestOpenGzip(t *testing.T) {
	want := testutil.LoadHex(t, "utmp/wtmp_session.hex")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(want)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	src, got := readSource(t, writeFile(t, "wtmp.1.gz", buf.Bytes()))
	require.Equal(t, Gzip, src.Compression)
	require.Equal(t, int64(len(want)), src.Size)
	require.Equal(t, want, got)
}

func TestOpenZstd(t *testing.T) {
	want := testutil.LoadHex(t, "utmp/wtmp_session.hex")
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(want, nil)
	require.NoError(t, enc.Close())

	src, got := readSource(t, writeFile(t, "wtmp.1.zst", compressed))
	require.Equal(t, Zstd, src.Compression)
	require.Equal(t, int64(len(want)), src.Size)
	require.Equal(t, want, got)
}

func TestOpenCorruptGzip(t *testing.T) {
	_, err := Open(writeFile(t, "wtmp.gz", []byte{0x1f, 0x8b, 0x08, 0x00, 0xde, 0xad}))
	require.ErrorIs(t, err, errclass.ErrSourceUnavailable)
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenRecordWithGzipMagic(t *testing.T) {
	// A login type of -29921 encodes as 1f 8b.
	data := testutil.Concat(testutil.RawRecord{Type: -29921}, testutil.RawRecord{Type: 7})
	require.Equal(t, Gzip, Detect(bufio.NewReader(bytes.NewReader(data))))

	src, got := readSource(t, writeFile(t, "wtmp", data))
	require.Equal(t, None, src.Compression)
	require.Equal(t, int64(len(data)), src.Size)
	require.Equal(t, data, got)

	src, err := Open(writeFile(t, "btmp", data))
	require.NoError(t, err)
	defer src.Close()
	_, err = record.NewReader(src).ReadAll(src.Size)
	require.ErrorIs(t, err, errclass.ErrInvalidLoginType)
}

func TestOpenInflateLimit(t *testing.T) {
	prev := MaxInflatedSize
	MaxInflatedSize = 1000
	t.Cleanup(func() { MaxInflatedSize = prev })

	_, err := Open(writeFile(t, "wtmp.1.gz", gzipBytes(t, make([]byte, 4000))))
	require.ErrorIs(t, err, errclass.ErrSourceUnavailable)
	require.ErrorIs(t, err, errInflateLimit)

	src, got := readSource(t, writeFile(t, "wtmp.2.gz", gzipBytes(t, make([]byte, 1000))))
	require.Equal(t, Gzip, src.Compression)
	require.Len(t, got, 1000)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, errclass.ErrSourceUnavailable)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.ErrorIs(t, err, errclass.ErrSourceUnavailable)
}

func TestDetect(t *testing.T) {
	cases := []struct {
		in   []byte
		want Compression
	}{
		{nil, None},
		{[]byte{0x1f}, None},
		{[]byte{0x1f, 0x8b, 0x08}, Gzip},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, Zstd},
		{testutil.RawRecord{Type: 7}.Bytes(), None},
	}
	for _, tc := range cases {
		br := bufio.NewReader(bytes.NewReader(tc.in))
		require.Equal(t, tc.want, Detect(br))
		rest, err := io.ReadAll(br)
		require.NoError(t, err)
		require.Equal(t, len(tc.in), len(rest), "detect must not consume input")
	}
}
