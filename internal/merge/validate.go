package merge

import (
	"fmt"
	"strings"
)

// ValidateHeaders checks that every placeholder name exists as a column in
// the first row. Rows are assumed structurally uniform, so only the first
// row's key set is consulted; a later row missing a key degrades gracefully
// at merge time instead of failing validation.
//
// All missing names are reported in a single aggregated error, comma-joined
// in placeholder order. An empty row set must be rejected by the caller
// before validation runs.
func ValidateHeaders(placeholders []string, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	first := rows[0]
	var missing []string
	for _, name := range placeholders {
		if _, ok := first[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("CSV missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
