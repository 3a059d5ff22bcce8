// Package merge provides the business logic for template-based document
// generation.
//
// This package is the heart of the generator, containing all domain logic
// independent of any UI or transport layer. It can be used by the terminal
// menu, the HTTP API, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Session: Holds one generation workflow's state (template text,
//     delimiter pair, extracted placeholders, data rows, error log). Sessions
//     are independently constructable and disposable; there is no package
//     level state.
//   - Placeholder extraction: Scans template text for delimiter-bounded
//     tokens, producing a deduplicated, order-preserving list of names.
//   - Merge: A pure function producing output text for exactly one row.
//   - Output writing: Drives the merge across all rows in either individual
//     (one file per row) or combined (single file) mode.
//   - ErrorLog: An append-only, caller-clearable list of human-readable
//     error strings accumulated across operations.
//
// # Workflow
//
// The expected call sequence mirrors the state machine
// Empty -> TemplateLoaded -> +DataLoaded -> Generated:
//
//	s := merge.NewSession("output")
//	if err := s.LoadTemplate("letter.txt"); err != nil { ... }
//	if err := s.LoadData("recipients.csv"); err != nil { ... }
//	result, err := s.Generate(merge.GenerateOptions{Mode: merge.ModeIndividual})
//
// Any load step can fail and leaves session state unchanged apart from error
// log growth. Generation requires both template and rows; attempting
// otherwise fails without touching the filesystem.
//
// # Error Handling
//
// Operations return explicit errors and additionally record every failure in
// the session's ErrorLog so interactive surfaces can print and clear the
// accumulated list. The log is never cleared by this package; that is the
// caller's responsibility. Technical errors can be mapped to user-friendly
// messages with support codes using [MapError].
package merge
