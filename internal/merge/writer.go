package merge

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects how generated output is laid out on disk.
type Mode string

const (
	// ModeIndividual writes one document per row.
	ModeIndividual Mode = "individual"

	// ModeCombined concatenates all rows' merged output into a single file.
	ModeCombined Mode = "combined"
)

// outputExt is the fixed extension for all generated documents.
const outputExt = ".txt"

// separatorWidth is the width of the '=' rule separating entries in a
// combined document.
const separatorWidth = 80

// timeNow is swapped in tests to pin combined-output filenames.
var timeNow = time.Now

// GenerateOptions controls a single generation run.
type GenerateOptions struct {
	// Mode selects individual or combined output. Defaults to ModeIndividual.
	Mode Mode

	// FilenameField optionally names a data column whose value becomes the
	// base filename in individual mode. Rows lacking the field fall back to
	// a positional document_<n> name. Ignored in combined mode.
	FilenameField string
}

// GenerateResult reports what a generation run produced.
type GenerateResult struct {
	// RunID uniquely identifies this generation run in logs.
	RunID string

	// Mode is the output mode that ran.
	Mode Mode

	// Written counts rows successfully processed: files written in
	// individual mode, entries included in combined mode.
	Written int

	// Failed counts rows that were logged and skipped.
	Failed int

	// Files lists the paths written, in creation order.
	Files []string
}

// Generate merges every loaded row with the template and writes the result
// according to opts.
//
// Per-row failures are isolated: each is recorded in the error log tagged
// with the row's 1-based index and processing continues with the next row.
// Generation succeeds when at least one row was processed; a run in which
// every row failed returns ErrNoOutput. In combined mode a failure to write
// the final file fails the run even if every row merged cleanly.
//
// The output directory (including parents) is created idempotently before
// any write. Generation attempted before both template and data are loaded
// fails without touching the filesystem.
func (s *Session) Generate(opts GenerateOptions) (GenerateResult, error) {
	if opts.Mode == "" {
		opts.Mode = ModeIndividual
	}
	if opts.Mode != ModeIndividual && opts.Mode != ModeCombined {
		return GenerateResult{}, s.fail(fmt.Errorf("unknown output mode: %q", opts.Mode))
	}

	if err := s.ready(); err != nil {
		return GenerateResult{}, s.fail(err)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return GenerateResult{}, s.fail(fmt.Errorf("error creating output directory: %v", err))
	}

	runID := uuid.NewString()
	log := s.log.With("run_id", runID, "mode", string(opts.Mode), "rows", len(s.rows))

	if opts.Mode == ModeCombined {
		return s.generateCombined(runID, log)
	}
	return s.generateIndividual(runID, opts.FilenameField, log)
}

// generateIndividual writes one document per row, resolving filename
// collisions so earlier output is never overwritten.
func (s *Session) generateIndividual(runID, filenameField string, log *slog.Logger) (GenerateResult, error) {
	res := GenerateResult{RunID: runID, Mode: ModeIndividual}

	for i, row := range s.rows {
		content, err := s.mergeFn(s.template, s.delims, s.placeholders, row)
		if err != nil {
			s.errs.Record(fmt.Sprintf("Error processing row %d: %v", i+1, err))
			res.Failed++
			continue
		}

		path := s.availablePath(baseFilename(row, filenameField, i))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			s.errs.Record(fmt.Sprintf("Error processing row %d: %v", i+1, err))
			res.Failed++
			continue
		}

		res.Files = append(res.Files, path)
		res.Written++
	}

	log.Info("generated documents", "written", res.Written, "failed", res.Failed)

	if res.Written == 0 {
		return res, s.fail(ErrNoOutput)
	}
	return res, nil
}

// generateCombined merges all rows into one in-memory accumulator and writes
// a single timestamped file, so repeated runs never collide.
func (s *Session) generateCombined(runID string, log *slog.Logger) (GenerateResult, error) {
	res := GenerateResult{RunID: runID, Mode: ModeCombined}

	separator := "\n" + strings.Repeat("=", separatorWidth) + "\n"

	var pieces []string
	for i, row := range s.rows {
		content, err := s.mergeFn(s.template, s.delims, s.placeholders, row)
		if err != nil {
			s.errs.Record(fmt.Sprintf("Error processing row %d: %v", i+1, err))
			res.Failed++
			continue
		}
		pieces = append(pieces, content, separator)
		res.Written++
	}

	if res.Written == 0 {
		return res, s.fail(ErrNoOutput)
	}

	name := fmt.Sprintf("combined_output_%s%s", timeNow().Format("20060102_150405"), outputExt)
	path := filepath.Join(s.outputDir, name)

	if err := os.WriteFile(path, []byte(strings.Join(pieces, "\n")), 0o644); err != nil {
		return res, s.fail(fmt.Errorf("error writing combined file: %v", err))
	}

	res.Files = []string{path}
	log.Info("generated combined document", "entries", res.Written, "failed", res.Failed, "file", name)
	return res, nil
}

// baseFilename derives the base output name for row i (0-based). When
// filenameField names a column present in the row and its cleaned value is
// non-empty, that value is used with spaces replaced by underscores;
// otherwise a positional document_<n> name with a 1-based index.
func baseFilename(row Row, filenameField string, i int) string {
	if filenameField != "" {
		if v, ok := row[filenameField]; ok {
			name := strings.ReplaceAll(strings.TrimSpace(v), " ", "_")
			if name != "" {
				return name
			}
		}
	}
	return fmt.Sprintf("document_%d", i+1)
}

// availablePath resolves filename collisions by appending an incrementing
// numeric suffix before the extension until an unused path is found.
//
// Any stat error ends the probe: "does not exist" means the path is free,
// and anything else (an unstat-able name, say one exceeding the
// filesystem's length limit) is left for the write itself to surface into
// the per-row error handling.
//
// The existence probe is not atomic; another process writing into the output
// directory at the same instant could race it. Acceptable for a single-user,
// single-process tool.
func (s *Session) availablePath(base string) string {
	path := filepath.Join(s.outputDir, base+outputExt)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		path = filepath.Join(s.outputDir, fmt.Sprintf("%s_%d%s", base, counter, outputExt))
	}
}
