package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mergedocs/mergedocs/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: 60 * time.Second,
		},
		Output: config.OutputConfig{Dir: filepath.Join(t.TempDir(), "out")},
		Merge:  config.MergeConfig{DelimiterStart: "{{", DelimiterEnd: "}}"},
		Limits: config.LimitsConfig{MaxUploadSize: 1 << 20},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
		},
	}
}

// multipartBody builds a multipart request body with the given file parts
// and plain fields.
func multipartBody(t *testing.T, files, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".txt")
		if err != nil {
			t.Fatalf("CreateFormFile(%s): %v", name, err)
		}
		fw.Write([]byte(content))
	}
	for name, value := range fields {
		mw.WriteField(name, value)
	}
	mw.Close()
	return buf, mw.FormDataContentType()
}

func doRequest(t *testing.T, srv *Server, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(testConfig(t))
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleExtract(t *testing.T) {
	srv := NewServer(testConfig(t))
	body, ct := multipartBody(t,
		map[string]string{"template": "Hi {{name}}, ref {{ref}}, again {{name}}"},
		nil,
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Placeholders) != 2 {
		t.Errorf("resp = %+v, want 2 deduplicated placeholders", resp)
	}
	if resp.Placeholders[0] != "name" || resp.Placeholders[1] != "ref" {
		t.Errorf("placeholders = %v, want [name ref]", resp.Placeholders)
	}
}

func TestHandleExtract_CustomDelimiters(t *testing.T) {
	srv := NewServer(testConfig(t))
	body, ct := multipartBody(t,
		map[string]string{"template": "Hi <<name>>"},
		map[string]string{"delim_start": "<<", "delim_end": ">>"},
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp extractResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Count != 1 || resp.Placeholders[0] != "name" {
		t.Errorf("resp = %+v, want [name]", resp)
	}
}

func TestHandleExtract_NoPlaceholders(t *testing.T) {
	srv := NewServer(testConfig(t))
	body, ct := multipartBody(t,
		map[string]string{"template": "plain text, no tokens"},
		nil,
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// The contract is an empty array, never null.
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"placeholders":[]`)) {
		t.Errorf("body = %s, want empty placeholders array", rec.Body.String())
	}
}

func TestHandleExtract_MissingFile(t *testing.T) {
	srv := NewServer(testConfig(t))
	body, ct := multipartBody(t, nil, map[string]string{"unused": "x"})

	rec := doRequest(t, srv, http.MethodPost, "/api/extract", body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code == "" {
		t.Errorf("error response carries no code: %+v", resp)
	}
}

func TestHandleGenerate_Individual(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg)

	body, ct := multipartBody(t,
		map[string]string{
			"template": "Hi {{name}}",
			"data":     "name\nAda\nAlan\n",
		},
		map[string]string{"mode": "individual"},
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Written != 2 || resp.RunID == "" {
		t.Errorf("resp = %+v, want 2 written with run ID", resp)
	}

	for _, name := range resp.Files {
		if _, err := os.Stat(filepath.Join(cfg.Output.Dir, name)); err != nil {
			t.Errorf("reported file %s not on disk: %v", name, err)
		}
	}
}

func TestHandleGenerate_Combined(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg)

	body, ct := multipartBody(t,
		map[string]string{
			"template": "Hi {{name}}",
			"data":     "name\nAda\n",
		},
		map[string]string{"mode": "combined"},
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Files) != 1 {
		t.Fatalf("Files = %v, want one combined file", resp.Files)
	}
}

func TestHandleGenerate_MissingColumns(t *testing.T) {
	srv := NewServer(testConfig(t))

	body, ct := multipartBody(t,
		map[string]string{
			"template": "Hi {{name}} {{email}}",
			"data":     "name\nAda\n",
		},
		nil,
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate", body, ct)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "DATA004" {
		t.Errorf("code = %s, want DATA004", resp.Code)
	}
}

func TestHandleGenerate_EmptyData(t *testing.T) {
	srv := NewServer(testConfig(t))

	body, ct := multipartBody(t,
		map[string]string{
			"template": "Hi {{name}}",
			"data":     "name\n",
		},
		nil,
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/generate", body, ct)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "DATA003" {
		t.Errorf("code = %s, want DATA003", resp.Code)
	}
}

func TestHandleExamples(t *testing.T) {
	srv := NewServer(testConfig(t))
	rec := doRequest(t, srv, http.MethodGet, "/api/examples", nil, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp examplesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !bytes.Contains([]byte(resp.Template), []byte("{{first_name}}")) {
		t.Errorf("example template missing first_name placeholder")
	}
	if !bytes.Contains([]byte(resp.CSVHeader), []byte("first_name")) {
		t.Errorf("example header missing first_name column")
	}
}
