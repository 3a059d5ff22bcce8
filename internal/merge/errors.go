package merge

import "errors"

// Sentinel errors for precondition and validation failures. Callers can test
// for these with errors.Is; every other failure is wrapped with enough
// context to identify the file or row involved.
var (
	// ErrNoTemplate is returned when generation is attempted before a
	// template has been loaded.
	ErrNoTemplate = errors.New("no template loaded")

	// ErrNoData is returned when generation is attempted before data rows
	// have been loaded.
	ErrNoData = errors.New("no CSV data loaded")

	// ErrNoRows is returned when a parsed data source contains a header but
	// no data rows (or nothing at all). It is reported before header
	// validation runs.
	ErrNoRows = errors.New("CSV file contains no data")

	// ErrNoOutput is returned by combined-mode generation when no row merged
	// successfully, so no output file was produced.
	ErrNoOutput = errors.New("no rows processed successfully, nothing written")
)
