package merge

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mergedocs/mergedocs/internal/csvdata"
)

// Session holds the state of one document-generation workflow: template
// text, delimiter pair, the placeholder list derived from them, loaded data
// rows, and the accumulated error log.
//
// A Session is not safe for concurrent use; the tool is single-threaded by
// design. Create one session per workflow and discard it when done.
type Session struct {
	template     string
	delims       Delimiters
	placeholders []string
	rows         []Row
	outputDir    string
	errs         *ErrorLog
	log          *slog.Logger

	// mergeFn produces merged text for one row. It defaults to the pure
	// Merge function; tests override it to exercise per-row failure
	// isolation in the output writer.
	mergeFn func(text string, d Delimiters, placeholders []string, row Row) (string, error)
}

// NewSession creates a session that writes generated documents into
// outputDir. The directory is created lazily on first generation.
func NewSession(outputDir string) *Session {
	return &Session{
		delims:    DefaultDelimiters(),
		outputDir: outputDir,
		errs:      NewErrorLog(),
		log:       slog.Default(),
		mergeFn: func(text string, d Delimiters, placeholders []string, row Row) (string, error) {
			return Merge(text, d, placeholders, row), nil
		},
	}
}

// WithLogger sets the structured logger used for generation reporting and
// returns the session for chaining.
func (s *Session) WithLogger(log *slog.Logger) *Session {
	if log != nil {
		s.log = log
	}
	return s
}

// LoadTemplate reads the template file at path and extracts its
// placeholders. A missing file and a read failure are reported as distinct
// errors; either leaves the previously loaded template untouched.
func (s *Session) LoadTemplate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.fail(fmt.Errorf("template file not found: %s", path))
		}
		return s.fail(fmt.Errorf("error reading template: %v", err))
	}

	s.setTemplate(string(data))
	s.log.Info("template loaded", "path", path, "placeholders", len(s.placeholders))
	return nil
}

// SetTemplate loads template text directly, bypassing the filesystem.
// Used by the HTTP API where the template arrives in the request body.
func (s *Session) SetTemplate(text string) {
	s.setTemplate(text)
}

func (s *Session) setTemplate(text string) {
	s.template = text
	s.extract()
}

// SetDelimiters replaces the delimiter pair. Both markers must be non-empty.
// When a template is already loaded its placeholders are re-extracted with
// the new markers, discarding the previous list.
func (s *Session) SetDelimiters(start, end string) error {
	d := Delimiters{Start: start, End: end}
	if err := d.Validate(); err != nil {
		return s.fail(err)
	}

	s.delims = d
	if s.template != "" {
		s.extract()
	}
	return nil
}

// extract recomputes the placeholder list from the current template text and
// delimiters. The list is never mutated any other way.
func (s *Session) extract() {
	s.placeholders = ExtractPlaceholders(s.template, s.delims)
}

// LoadData reads and parses the CSV file at path into the session's row
// source, then validates its header columns against the current placeholder
// list. On any failure the previously loaded rows are untouched.
func (s *Session) LoadData(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s.fail(fmt.Errorf("CSV file not found: %s", path))
		}
		return s.fail(fmt.Errorf("error reading CSV: %v", err))
	}
	defer f.Close()

	if err := s.LoadDataFrom(f); err != nil {
		return err
	}
	s.log.Info("data loaded", "path", path, "rows", len(s.rows))
	return nil
}

// LoadDataFrom parses CSV data from r into the session's row source and
// validates headers against the placeholder list. An empty result (header
// only, or nothing at all) is rejected with a distinct "no data" error
// before validation runs.
func (s *Session) LoadDataFrom(r io.Reader) error {
	records, err := csvdata.Parse(r)
	if err != nil {
		return s.fail(fmt.Errorf("error reading CSV: %v", err))
	}
	if len(records) == 0 {
		return s.fail(ErrNoRows)
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row(rec)
	}

	if err := ValidateHeaders(s.placeholders, rows); err != nil {
		return s.fail(err)
	}

	s.rows = rows
	return nil
}

// Template returns the currently loaded template text.
func (s *Session) Template() string { return s.template }

// Delimiters returns the current delimiter pair.
func (s *Session) Delimiters() Delimiters { return s.delims }

// Placeholders returns a copy of the ordered, deduplicated placeholder list.
func (s *Session) Placeholders() []string {
	out := make([]string, len(s.placeholders))
	copy(out, s.placeholders)
	return out
}

// RowCount returns the number of loaded data rows.
func (s *Session) RowCount() int { return len(s.rows) }

// OutputDir returns the directory generated documents are written to.
func (s *Session) OutputDir() string { return s.outputDir }

// Errors returns the session's error log. The log is never cleared by the
// session itself; callers clear it between operations.
func (s *Session) Errors() *ErrorLog { return s.errs }

// ready reports whether both template and rows are loaded. Generation
// without either fails before touching the filesystem.
func (s *Session) ready() error {
	if s.template == "" {
		return ErrNoTemplate
	}
	if len(s.rows) == 0 {
		return ErrNoData
	}
	return nil
}

// fail records err in the error log and returns it unchanged.
func (s *Session) fail(err error) error {
	s.errs.Record(err.Error())
	return err
}
