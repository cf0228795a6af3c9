// Package export writes the accumulated recordings to the CSV output file.
package export

import (
	"encoding/csv"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"github.com/webex-tools/recordings-export/pkg/recordings"
)

// DefaultFilename is the output path used when none is given.
const DefaultFilename = "converged_recordings.csv"

// WriteCSV writes all items to a CSV file at path: a header row with the
// fixed 15-column schema, then one row per record in input order. The file
// is fully rewritten on every run. The write is atomic via renameio: the
// destination either keeps its previous content or receives the complete new
// file, never a partial one.
func WriteCSV(path string, items []recordings.Recording) error {
	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending CSV file: %w", err)
	}
	defer func() {
		// renameio removes the temp file if it was not committed.
		if err := pendingFile.Cleanup(); err != nil {
			log.Debug().Err(err).Msg("cleanup pending CSV file")
		}
	}()

	w := csv.NewWriter(pendingFile)
	if err := w.Write(recordings.Columns()); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, item := range items {
		if err := w.Write(item.Row()); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV data: %w", err)
	}

	// CloseAtomicallyReplace: fsync + rename (durable + atomic)
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace CSV file: %w", err)
	}

	log.Debug().
		Str("path", path).
		Int("rows", len(items)).
		Msg("Wrote recordings CSV")

	return nil
}
