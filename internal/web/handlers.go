package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/mergedocs/mergedocs/internal/logging"
	"github.com/mergedocs/mergedocs/internal/merge"
)

// extractResponse is the JSON body for POST /api/extract.
type extractResponse struct {
	Placeholders []string `json:"placeholders"`
	Count        int      `json:"count"`
}

// generateResponse is the JSON body for POST /api/generate.
type generateResponse struct {
	RunID   string   `json:"runId"`
	Mode    string   `json:"mode"`
	Written int      `json:"written"`
	Failed  int      `json:"failed"`
	Files   []string `json:"files"`
	Errors  []string `json:"errors,omitempty"`
}

// examplesResponse is the JSON body for GET /api/examples.
type examplesResponse struct {
	Template  string `json:"template"`
	CSVHeader string `json:"csvHeader"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleExtract parses an uploaded template and returns its placeholder
// list without generating anything.
//
// Multipart form fields:
//   - template (file, required)
//   - delim_start, delim_end (optional, default from config)
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxUploadSize)

	text, err := readFormFile(r, "template")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	delims, err := s.formDelimiters(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	placeholders := merge.ExtractPlaceholders(text, delims)
	if placeholders == nil {
		// Keep the JSON contract stable: an empty array, never null.
		placeholders = []string{}
	}
	writeJSON(w, extractResponse{
		Placeholders: placeholders,
		Count:        len(placeholders),
	})
}

// handleGenerate runs a full generation: template + CSV data in, documents
// written to the configured output directory, run summary out.
//
// Multipart form fields:
//   - template (file, required)
//   - data (file, required, CSV)
//   - mode ("individual" or "combined", default individual)
//   - filename_field (optional, individual mode only)
//   - delim_start, delim_end (optional, default from config)
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxUploadSize)

	text, err := readFormFile(r, "template")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	delims, err := s.formDelimiters(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	// One session per request; nothing is shared between generations.
	session := merge.NewSession(s.cfg.Output.Dir).WithLogger(logging.FromContext(r.Context()))
	if err := session.SetDelimiters(delims.Start, delims.End); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	session.SetTemplate(text)

	data, _, err := r.FormFile("data")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("no data file provided"), http.StatusBadRequest)
		return
	}
	defer data.Close()

	if err := session.LoadDataFrom(data); err != nil {
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	res, err := session.Generate(merge.GenerateOptions{
		Mode:          merge.Mode(r.FormValue("mode")),
		FilenameField: r.FormValue("filename_field"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, merge.ErrNoOutput) {
			status = http.StatusUnprocessableEntity
		}
		s.respondError(w, r, err, status)
		return
	}

	// Report file basenames only; the output directory layout is server
	// configuration, not client business.
	files := make([]string, len(res.Files))
	for i, f := range res.Files {
		files[i] = filepath.Base(f)
	}

	writeJSON(w, generateResponse{
		RunID:   res.RunID,
		Mode:    string(res.Mode),
		Written: res.Written,
		Failed:  res.Failed,
		Files:   files,
		Errors:  session.Errors().List(),
	})
}

// handleExamples returns the built-in reference template and CSV header.
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, examplesResponse{
		Template:  merge.TemplateExample(),
		CSVHeader: merge.CSVExample(),
	})
}

// formDelimiters resolves the delimiter pair from form fields, falling back
// to the configured defaults when a field is absent.
func (s *Server) formDelimiters(r *http.Request) (merge.Delimiters, error) {
	d := merge.Delimiters{
		Start: r.FormValue("delim_start"),
		End:   r.FormValue("delim_end"),
	}
	if d.Start == "" {
		d.Start = s.cfg.Merge.DelimiterStart
	}
	if d.End == "" {
		d.End = s.cfg.Merge.DelimiterEnd
	}
	if err := d.Validate(); err != nil {
		return merge.Delimiters{}, err
	}
	return d, nil
}

// readFormFile reads the named multipart file into a string.
func readFormFile(r *http.Request, field string) (string, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("no %s file provided", field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s upload: %w", field, err)
	}
	return string(data), nil
}
