package ioingest

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnweather/pkg/record"
	"github.com/gnames/gnweather/pkg/schema"
	"github.com/gnames/gnweather/pkg/store"
)

const (
	stationExt = ".txt"

	// maxLineSize limits the length of one line of a station file.
	maxLineSize = 1 << 20
)

// stationFile is a data file of one station.
type stationFile struct {
	path      string
	stationID string
}

// stationFiles lists regular ".txt" files directly inside dir in
// lexical order. The file name without extension is the station ID,
// taken verbatim.
func stationFiles(dir string) ([]stationFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, DirError(dir, err)
	}
	if !info.IsDir() {
		return nil, DirError(dir, errNotDir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, DirError(dir, err)
	}

	var res []stationFile
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || filepath.Ext(name) != stationExt {
			continue
		}

		id := strings.TrimSuffix(name, stationExt)
		if id == "" {
			continue
		}
		if len(id) > schema.StationIDMaxLen {
			return nil, StationIDError(name, id)
		}

		res = append(res, stationFile{
			path:      filepath.Join(dir, name),
			stationID: id,
		})
	}
	return res, nil
}

// readFiles sends stations and their observations to chItems.
func (in *ingester) readFiles(
	ctx context.Context,
	files []stationFile,
	chItems chan<- item,
) error {
	var bar *pb.ProgressBar
	if in.cfg != nil && in.cfg.Ingest.ShowProgress {
		bar = pb.Full.Start(len(files))
		bar.Set("prefix", "Ingesting stations: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for _, f := range files {
		if err := readFile(ctx, f, chItems); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

// readFile reads one station file line by line. Blank lines are skipped.
func readFile(
	ctx context.Context,
	f stationFile,
	chItems chan<- item,
) error {
	fh, err := os.Open(f.path)
	if err != nil {
		return FileError(f.path, err)
	}
	defer fh.Close()

	if err = send(ctx, chItems, item{stationID: f.stationID}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lineNo int
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if record.IsBlank(line) {
			continue
		}

		rec, err := record.Parse(line)
		if err != nil {
			return FormatError(filepath.Base(f.path), lineNo, line, err)
		}

		obs := store.NewObservation(f.stationID, rec)
		if err = send(ctx, chItems, item{stationID: f.stationID, obs: &obs}); err != nil {
			return err
		}
	}

	if err = scanner.Err(); err != nil {
		return FileError(f.path, err)
	}
	return nil
}

func send(ctx context.Context, chItems chan<- item, it item) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case chItems <- it:
		return nil
	}
}
