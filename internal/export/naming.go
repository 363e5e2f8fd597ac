package export

import (
	"path/filepath"
	"time"
)

const fileTimestampLayout = "2006-01-02_150405"

// FileName returns "<timestamp>.<ext>" for the given moment in local time.
func FileName(now time.Time, ext string) string {
	return now.Local().Format(fileTimestampLayout) + "." + ext
}

// OutputPath joins dir and FileName.
func OutputPath(dir string, now time.Time, ext string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, FileName(now, ext))
}
