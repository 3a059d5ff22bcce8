package merge

// ErrorLog is an append-only list of human-readable error strings.
//
// The log is a passive sink: recording never fails and nothing is ever
// dropped. There is no deduplication, no severity levels, and no size bound.
// Only an explicit Clear empties it, so callers that do not clear between
// operations will see errors accumulate across calls.
type ErrorLog struct {
	entries []string
}

// NewErrorLog returns an empty error log.
func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

// Record appends a message to the log.
func (l *ErrorLog) Record(message string) {
	l.entries = append(l.entries, message)
}

// List returns the full ordered sequence of recorded messages without
// clearing. The returned slice is a copy; mutating it does not affect the
// log.
func (l *ErrorLog) List() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded messages.
func (l *ErrorLog) Len() int {
	return len(l.entries)
}

// Clear empties the log.
func (l *ErrorLog) Clear() {
	l.entries = l.entries[:0]
}

// Drain returns all recorded messages and clears the log in one step.
// Convenience for interactive surfaces that print errors then reset.
func (l *ErrorLog) Drain() []string {
	out := l.List()
	l.Clear()
	return out
}
