package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mergedocs/mergedocs/internal/merge"
)

/* ----------------------------------------
	ACTION MESSAGES
---------------------------------------- */

// opResult carries the outcome of a menu action back into the update loop.
// Exactly one of text/errs is populated on a clean outcome; a partially
// successful generation fills both.
type opResult struct {
	text string
	errs []string
}

/* ----------------------------------------
	ACTIONS
---------------------------------------- */

func loadTemplateAction(s *merge.Session, values []string) tea.Cmd {
	path := strings.TrimSpace(values[0])
	return func() tea.Msg {
		if err := s.LoadTemplate(path); err != nil {
			return opResult{errs: drained(s, err)}
		}
		found := s.Placeholders()
		return opResult{text: fmt.Sprintf(
			"Template loaded. Found %d placeholder(s): %s",
			len(found), strings.Join(found, ", "),
		)}
	}
}

func loadDataAction(s *merge.Session, values []string) tea.Cmd {
	path := strings.TrimSpace(values[0])
	return func() tea.Msg {
		if err := s.LoadData(path); err != nil {
			return opResult{errs: drained(s, err)}
		}
		return opResult{text: fmt.Sprintf("CSV data loaded. %d row(s) ready.", s.RowCount())}
	}
}

func setDelimitersAction(s *merge.Session, values []string) tea.Cmd {
	start, end := values[0], values[1]
	return func() tea.Msg {
		if err := s.SetDelimiters(start, end); err != nil {
			return opResult{errs: drained(s, err)}
		}
		msg := fmt.Sprintf("Delimiters set to %s...%s", start, end)
		if s.Template() != "" {
			msg += fmt.Sprintf(" (%d placeholder(s) found)", len(s.Placeholders()))
		}
		return opResult{text: msg}
	}
}

// generateAction builds the action for either output mode. In individual
// mode the single prompt value selects the CSV column used for filenames.
func generateAction(mode merge.Mode) func(s *merge.Session, values []string) tea.Cmd {
	return func(s *merge.Session, values []string) tea.Cmd {
		var field string
		if mode == merge.ModeIndividual {
			field = strings.TrimSpace(values[0])
		}
		return func() tea.Msg {
			res, err := s.Generate(merge.GenerateOptions{
				Mode:          mode,
				FilenameField: field,
			})
			if err != nil {
				return opResult{errs: drained(s, err)}
			}

			text := fmt.Sprintf(
				"Generation complete. Wrote %d document(s) to %s.",
				res.Written, s.OutputDir(),
			)
			if res.Failed > 0 {
				text += fmt.Sprintf(" %d row(s) failed.", res.Failed)
			}
			// Partial failures are surfaced alongside the summary and
			// cleared, same as a failed run.
			return opResult{text: text, errs: s.Errors().Drain()}
		}
	}
}

func examplesAction(s *merge.Session, values []string) tea.Cmd {
	return func() tea.Msg {
		return opResult{text: fmt.Sprintf(
			"Example template:\n\n%s\nExample CSV header:\n\n%s",
			merge.TemplateExample(), merge.CSVExample(),
		)}
	}
}

// drained collects everything the session recorded for this operation and
// resets the log, falling back to the raw error if nothing was recorded.
func drained(s *merge.Session, err error) []string {
	errs := s.Errors().Drain()
	if len(errs) == 0 {
		errs = []string{err.Error()}
	}
	return errs
}
