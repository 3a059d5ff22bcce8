package merge

import "strings"

// Row is one record of tabular input data, keyed by column name.
// Rows are treated as immutable once loaded.
type Row map[string]string

// MissingValueSuffix is appended to a placeholder name to form the literal
// marker substituted when a row lacks that key.
const MissingValueSuffix = "_NOT_FOUND"

// Merge produces output text for exactly one row.
//
// For each placeholder name, in list order, every literal occurrence of
// start+name+end in the current working copy of the text is replaced with
// the row's value for that name, or with name+"_NOT_FOUND" when the row
// lacks the key. Replacement is literal-substring, not pattern-based.
//
// Because replacement runs in list order over a mutating working copy, a
// substituted value that itself contains a later placeholder's token WILL be
// re-matched by that later pass. Earlier-processed values are not protected
// from subsequent passes. This chaining is long-standing observable behavior
// and is kept as-is; see DESIGN.md before changing it.
//
// Merge has no side effects; it is a pure function of its inputs.
func Merge(text string, d Delimiters, placeholders []string, row Row) string {
	out := text
	for _, name := range placeholders {
		value, ok := row[name]
		if !ok {
			value = name + MissingValueSuffix
		}
		out = strings.ReplaceAll(out, d.Wrap(name), value)
	}
	return out
}
