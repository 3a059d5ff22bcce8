package merge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newLoadedSession(t *testing.T, outDir, template, csv string) *Session {
	t.Helper()
	s := NewSession(outDir)
	s.SetTemplate(template)
	if err := s.LoadDataFrom(strings.NewReader(csv)); err != nil {
		t.Fatalf("LoadDataFrom() error = %v", err)
	}
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestGenerate_Individual(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	s := newLoadedSession(t, out, "Hi {{name}}", "name\nAda\nAlan\n")

	res, err := s.Generate(GenerateOptions{Mode: ModeIndividual})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Written != 2 {
		t.Errorf("Written = %d, want 2", res.Written)
	}

	if got := readFile(t, filepath.Join(out, "document_1.txt")); got != "Hi Ada" {
		t.Errorf("document_1.txt = %q, want %q", got, "Hi Ada")
	}
	if got := readFile(t, filepath.Join(out, "document_2.txt")); got != "Hi Alan" {
		t.Errorf("document_2.txt = %q, want %q", got, "Hi Alan")
	}
}

func TestGenerate_Individual_FilenameField(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	s := newLoadedSession(t, out, "Hi {{name}}", "name\nAda Lovelace\n")

	res, err := s.Generate(GenerateOptions{Mode: ModeIndividual, FilenameField: "name"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := filepath.Join(out, "Ada_Lovelace.txt")
	if len(res.Files) != 1 || res.Files[0] != want {
		t.Errorf("Files = %v, want [%s]", res.Files, want)
	}
}

func TestGenerate_Individual_CollisionSuffix(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	csv := "name\nAda\n"
	template := "Hi {{name}}"

	first := newLoadedSession(t, out, template, csv)
	if _, err := first.Generate(GenerateOptions{Mode: ModeIndividual, FilenameField: "name"}); err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}

	second := newLoadedSession(t, out, template, csv)
	if _, err := second.Generate(GenerateOptions{Mode: ModeIndividual, FilenameField: "name"}); err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}

	for _, name := range []string{"Ada.txt", "Ada_1.txt"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestGenerate_Individual_RowFailureIsIsolated(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	s := newLoadedSession(t, out, "Hi {{name}}", "name\nAda\nAlan\nGrace\n")

	calls := 0
	s.mergeFn = func(text string, d Delimiters, placeholders []string, row Row) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("boom")
		}
		return Merge(text, d, placeholders, row), nil
	}

	res, err := s.Generate(GenerateOptions{Mode: ModeIndividual})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Written != 2 || res.Failed != 1 {
		t.Errorf("Written/Failed = %d/%d, want 2/1", res.Written, res.Failed)
	}

	logs := s.Errors().List()
	if len(logs) != 1 || !strings.Contains(logs[0], "Error processing row 2:") {
		t.Errorf("error log = %v, want one entry tagged row 2", logs)
	}
}

func TestGenerate_Individual_OverlongFilenameIsRowFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	// The second row's name exceeds the filesystem's 255-byte filename
	// limit, so neither the existence probe nor the write can use it. That
	// must be contained as a per-row failure, not hang or abort the run.
	csv := "name\nAda\n" + strings.Repeat("x", 300) + "\n"
	s := newLoadedSession(t, out, "Hi {{name}}", csv)

	res, err := s.Generate(GenerateOptions{Mode: ModeIndividual, FilenameField: "name"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Written != 1 || res.Failed != 1 {
		t.Errorf("Written/Failed = %d/%d, want 1/1", res.Written, res.Failed)
	}
	if got := readFile(t, filepath.Join(out, "Ada.txt")); got != "Hi Ada" {
		t.Errorf("Ada.txt = %q, want %q", got, "Hi Ada")
	}

	logs := s.Errors().List()
	if len(logs) != 1 || !strings.Contains(logs[0], "Error processing row 2:") {
		t.Errorf("error log = %v, want one entry tagged row 2", logs)
	}
}

func TestGenerate_Individual_MissingKeyDegradesToMarker(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	s := newLoadedSession(t, out, "{{name}} / {{name}}", "name\nAda\n")

	// Simulate a ragged source: the second row lacks the key entirely.
	s.rows = append(s.rows, Row{"other": "x"})

	if _, err := s.Generate(GenerateOptions{Mode: ModeIndividual}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := readFile(t, filepath.Join(out, "document_2.txt")); !strings.Contains(got, "name_NOT_FOUND") {
		t.Errorf("document_2.txt = %q, want name_NOT_FOUND marker", got)
	}
}

func TestGenerate_Combined(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	s := newLoadedSession(t, out, "Hi {{name}}", "name\nAda\nAlan\n")

	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = orig }()

	res, err := s.Generate(GenerateOptions{Mode: ModeCombined})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Written != 2 {
		t.Errorf("Written = %d, want 2", res.Written)
	}

	path := filepath.Join(out, "combined_output_20260314_150926.txt")
	content := readFile(t, path)

	if !strings.Contains(content, "Hi Ada") || !strings.Contains(content, "Hi Alan") {
		t.Errorf("combined content missing entries: %q", content)
	}
	rule := strings.Repeat("=", 80)
	if strings.Count(content, rule) != 2 {
		t.Errorf("separator rule appears %d times, want 2", strings.Count(content, rule))
	}
}

func TestGenerate_Combined_AllRowsFail(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	s := newLoadedSession(t, out, "Hi {{name}}", "name\nAda\n")
	s.mergeFn = func(string, Delimiters, []string, Row) (string, error) {
		return "", errors.New("boom")
	}

	_, err := s.Generate(GenerateOptions{Mode: ModeCombined})
	if !errors.Is(err, ErrNoOutput) {
		t.Fatalf("Generate() error = %v, want ErrNoOutput", err)
	}

	entries, readErr := os.ReadDir(out)
	if readErr != nil {
		t.Fatalf("reading output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("output dir not empty after total failure: %v", entries)
	}
}

func TestGenerate_NotReady(t *testing.T) {
	out := filepath.Join(t.TempDir(), "never-created")

	// Template but no data.
	s := NewSession(out)
	s.SetTemplate("{{a}}")
	if _, err := s.Generate(GenerateOptions{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Generate() error = %v, want ErrNoData", err)
	}

	// Data but no template.
	s2 := NewSession(out)
	if err := s2.LoadDataFrom(strings.NewReader("a\n1\n")); err != nil {
		t.Fatalf("LoadDataFrom() error = %v", err)
	}
	if _, err := s2.Generate(GenerateOptions{}); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("Generate() error = %v, want ErrNoTemplate", err)
	}

	// Neither attempt may touch the filesystem.
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output dir was created despite not-ready failure")
	}
}

func TestGenerate_UnknownMode(t *testing.T) {
	s := newLoadedSession(t, filepath.Join(t.TempDir(), "out"), "{{a}}", "a\n1\n")
	if _, err := s.Generate(GenerateOptions{Mode: Mode("zip")}); err == nil {
		t.Error("Generate() expected error for unknown mode")
	}
}

func TestGenerate_ResultCarriesRunID(t *testing.T) {
	s := newLoadedSession(t, filepath.Join(t.TempDir(), "out"), "{{a}}", "a\n1\n")
	res, err := s.Generate(GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}
