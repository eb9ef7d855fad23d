package ioingest

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/gnweather/pkg/errcode"
	"github.com/gnames/gnweather/pkg/record"
	"github.com/gnames/gnweather/pkg/schema"
)

var errNotDir = errors.New("not a directory")

// NoStoreError is returned when ingestion runs without a store.
func NoStoreError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Ingestion attempted without database connection",
		Err:  fmt.Errorf("store is not set"),
	}
}

// DirError is returned when the data directory cannot be read.
func DirError(dir string, err error) error {
	msg := `Cannot read data directory <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory exists
  2. Pass the directory with <em>--data-dir</em>`

	return &gn.Error{
		Code: errcode.IngestDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot read data directory %s: %w", dir, err),
	}
}

// FileError is returned when a station file cannot be read.
func FileError(path string, err error) error {
	msg := "Cannot read station file <em>%s</em>"

	return &gn.Error{
		Code: errcode.IngestFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// StationIDError is returned for file names that cannot serve as a
// station ID.
func StationIDError(file, id string) error {
	msg := `File <em>%s</em> has station ID longer than %d characters

<em>Station ID:</em> %s`

	return &gn.Error{
		Code: errcode.IngestStationIDError,
		Msg:  msg,
		Vars: []any{file, schema.StationIDMaxLen, id},
		Err: fmt.Errorf("station id %q is longer than %d characters",
			id, schema.StationIDMaxLen),
	}
}

// FormatError is returned for a malformed line. Nothing of the run
// is committed.
func FormatError(file string, lineNo int, line string, err error) error {
	msg := `Malformed record in <em>%s</em> at line %d

<em>Line:</em> %s
<em>Problem:</em> %s

Expected 4 tab-separated fields: YYYYMMDD, TMAX, TMIN, PRCP.
Nothing was saved from this run.`

	line = gnlib.FixUtf8(line)
	reason := err.Error()
	var fErr *record.FormatError
	if errors.As(err, &fErr) {
		reason = fErr.Reason
	}

	return &gn.Error{
		Code: errcode.IngestFormatError,
		Msg:  msg,
		Vars: []any{file, lineNo, line, reason},
		Err:  fmt.Errorf("%s:%d: %w", file, lineNo, err),
	}
}

// CancelledError is returned when ingestion is interrupted.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.IngestCancelledError,
		Msg:  "Ingestion was cancelled, nothing was saved",
		Err:  fmt.Errorf("ingestion cancelled: %w", err),
	}
}
