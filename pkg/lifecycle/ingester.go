package lifecycle

import (
	"context"
)

// Ingester loads per-station observation files into the store.
//
// Every file with ".txt" extension directly inside a data directory holds
// observations of one station; the file name without extension is the
// station identifier. One Ingest call is atomic: either all observations
// of all files are committed, or none.
//
// Ingestion is idempotent. Loading the same files again replaces existing
// observations in place and does not create duplicates.
type Ingester interface {
	// Ingest loads all station files from dataDir and returns the number
	// of processed (non-blank) lines.
	Ingest(ctx context.Context, dataDir string) (int, error)
}
