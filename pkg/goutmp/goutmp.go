// Package goutmp decodes utmp, wtmp and btmp login-accounting files and
// exports them as tabular text.
package goutmp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/goutmp/internal/export"
	_ "github.com/d21d3q/goutmp/internal/export/csvexport"  // register exporter
	_ "github.com/d21d3q/goutmp/internal/export/jsonexport" // register exporter
	"github.com/d21d3q/goutmp/internal/record"
	"github.com/d21d3q/goutmp/internal/source"
	"github.com/d21d3q/goutmp/pkg/errclass"
)

// Record is a decoded login-accounting entry.
type Record = record.Record

// Decode decodes an in-memory image of a utmp file.
func Decode(data []byte, opts DecodeOptions) ([]Record, error) {
	return DecodeReader(bytes.NewReader(data), int64(len(data)), opts)
}

// DecodeReader decodes size bytes of records from r.
func DecodeReader(r io.Reader, size int64, opts DecodeOptions) ([]Record, error) {
	readerOpts, err := opts.toInternal()
	if err != nil {
		return nil, errclass.ErrUsage.Wrap(err)
	}
	records, err := record.NewReader(r, readerOpts...).ReadAll(size)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeFile opens path, inflating gzip or zstd files, and decodes it.
func DecodeFile(path string, opts DecodeOptions) ([]Record, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return DecodeReader(src, src.Size, opts)
}

// ExportOptions configures Export.
type ExportOptions struct {
	DecodeOptions
	Input     string
	OutputDir string
	// Format names a registered exporter, "csv" when empty.
	Format string
	Render export.Options
	// Now stamps the output file name; time.Now when nil.
	Now    func() time.Time
	Logger logrus.FieldLogger
}

// Formats lists the available export formats.
func Formats() []string {
	return export.Names()
}

// Result summarizes a successful export.
type Result struct {
	Input       string
	Output      string
	Format      string
	Compression source.Compression
	Records     int
	ByType      map[string]int
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"input":       r.Input,
		"output":      r.Output,
		"format":      r.Format,
		"compression": r.Compression,
		"records":     r.Records,
	}
	if len(r.ByType) > 0 {
		summary["by_type"] = r.ByType
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("input:%s output:%s records:%d (marshal error: %v)", r.Input, r.Output, r.Records, err)
	}
	return string(data)
}

// Export decodes opts.Input and writes the export into opts.OutputDir as
// "<timestamp>.<ext>". The output file only appears once every record has
// been decoded and written; a rejected source leaves nothing behind.
func Export(opts ExportOptions) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	format := opts.Format
	if format == "" {
		format = "csv"
	}
	exp, err := export.Lookup(format)
	if err != nil {
		return Result{}, errclass.ErrUsage.Wrap(err)
	}
	readerOpts, err := opts.toInternal()
	if err != nil {
		return Result{}, errclass.ErrUsage.Wrap(err)
	}
	render := opts.Render
	if render.Delimiter == 0 {
		render.Delimiter = ','
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	src, err := source.Open(opts.Input)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()
	log.WithFields(logrus.Fields{
		"input":       src.Name,
		"bytes":       src.Size,
		"compression": src.Compression,
	}).Debug("source opened")

	sink, err := newSink(outDir)
	if err != nil {
		return Result{}, err
	}
	defer sink.discard()

	records, err := record.NewReader(src, readerOpts...).ReadAll(src.Size)
	if err != nil {
		log.WithError(err).WithField("decoded", len(records)).Debug("source rejected")
		return Result{}, err
	}

	if err := exp.Write(sink.w, records, render); err != nil {
		return Result{}, errclass.ErrSinkUnavailable.WithMessagef("write %s", format).Wrap(err)
	}
	output := export.OutputPath(outDir, now(), exp.Extension())
	if err := sink.commit(output); err != nil {
		return Result{}, err
	}

	res := Result{
		Input:       src.Name,
		Output:      output,
		Format:      exp.Name(),
		Compression: src.Compression,
		Records:     len(records),
		ByType:      countByType(records),
	}
	log.WithFields(logrus.Fields{
		"output":  res.Output,
		"records": res.Records,
		"format":  res.Format,
	}).Info("export written")
	return res, nil
}

func countByType(records []Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Type.String()]++
	}
	return counts
}

// sink is a temporary file in the output directory renamed into place on
// commit.
type sink struct {
	f    *os.File
	w    *bufio.Writer
	done bool
}

func newSink(dir string) (*sink, error) {
	f, err := os.CreateTemp(dir, ".goutmp-*.tmp")
	if err != nil {
		return nil, errclass.ErrSinkUnavailable.WithMessagef("create output in %s", dir).Wrap(err)
	}
	return &sink{f: f, w: bufio.NewWriter(f)}, nil
}

func (s *sink) commit(path string) error {
	if err := s.w.Flush(); err != nil {
		return errclass.ErrSinkUnavailable.WithMessage("flush output").Wrap(err)
	}
	if err := s.f.Sync(); err != nil {
		return errclass.ErrSinkUnavailable.WithMessage("fsync output").Wrap(err)
	}
	if err := s.f.Close(); err != nil {
		return errclass.ErrSinkUnavailable.WithMessage("close output").Wrap(err)
	}
	if err := os.Chmod(s.f.Name(), 0o644); err != nil {
		return errclass.ErrSinkUnavailable.WithMessage("chmod output").Wrap(err)
	}
	if err := os.Rename(s.f.Name(), filepath.Clean(path)); err != nil {
		return errclass.ErrSinkUnavailable.WithMessagef("rename output to %s", path).Wrap(err)
	}
	s.done = true
	return nil
}

func (s *sink) discard() {
	if s.done {
		return
	}
	s.f.Close()
	os.Remove(s.f.Name())
}
