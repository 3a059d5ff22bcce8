// usermsg.go maps technical errors to user-friendly messages with codes
// for support reference. When users report an error, they can quote the code
// for faster diagnosis.
//
// Error codes are grouped by category:
//
//	TPL001-TPL099  Template errors (missing file, read failure, delimiters)
//	DATA001-DATA099 Data errors (missing file, parse failure, empty, columns)
//	GEN001-GEN099  Generation errors (preconditions, per-row, final write)
//	ERR000         Fallback when no specific pattern matches
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.
package merge

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern pairs a technical-error substring with its user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Template errors (TPL001-TPL003)
	{
		pattern: "template file not found",
		msg: UserMessage{
			Message: "The template file could not be found",
			Action:  "Check the path and try again",
			Code:    "TPL001",
		},
	},
	{
		pattern: "error reading template",
		msg: UserMessage{
			Message: "The template file could not be read",
			Action:  "Ensure the file is readable UTF-8 text",
			Code:    "TPL002",
		},
	},
	{
		pattern: "invalid delimiters",
		msg: UserMessage{
			Message: "Delimiter markers must be non-empty",
			Action:  "Provide both a start and an end marker",
			Code:    "TPL003",
		},
	},

	// Data errors (DATA001-DATA005)
	{
		pattern: "csv file not found",
		msg: UserMessage{
			Message: "The CSV file could not be found",
			Action:  "Check the path and try again",
			Code:    "DATA001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The file is not a valid CSV",
			Action:  "Ensure the file is comma-separated with consistent columns",
			Code:    "DATA002",
		},
	},
	// Must come after "invalid csv": parse failures carry both phrases
	// and keep their own code.
	{
		pattern: "error reading csv",
		msg: UserMessage{
			Message: "The CSV file could not be read",
			Action:  "Ensure the file is readable UTF-8 text",
			Code:    "DATA005",
		},
	},
	{
		pattern: "contains no data",
		msg: UserMessage{
			Message: "The CSV file contains no data rows",
			Action:  "Add at least one data row below the header",
			Code:    "DATA003",
		},
	},
	{
		pattern: "missing required columns",
		msg: UserMessage{
			Message: "The CSV is missing columns required by the template",
			Action:  "Add the listed columns or remove their placeholders",
			Code:    "DATA004",
		},
	},

	// Generation errors (GEN001-GEN006)
	{
		pattern: "no template loaded",
		msg: UserMessage{
			Message: "No template is loaded",
			Action:  "Load a template before generating",
			Code:    "GEN001",
		},
	},
	{
		pattern: "no csv data loaded",
		msg: UserMessage{
			Message: "No CSV data is loaded",
			Action:  "Load a CSV file before generating",
			Code:    "GEN002",
		},
	},
	{
		pattern: "error processing row",
		msg: UserMessage{
			Message: "A data row could not be processed",
			Action:  "Review the error log for the affected row numbers",
			Code:    "GEN003",
		},
	},
	{
		pattern: "error writing combined file",
		msg: UserMessage{
			Message: "The combined output file could not be written",
			Action:  "Check permissions and free space in the output directory",
			Code:    "GEN004",
		},
	},
	{
		pattern: "nothing written",
		msg: UserMessage{
			Message: "No rows were processed successfully",
			Action:  "Review the error log for per-row failures",
			Code:    "GEN005",
		},
	},
	{
		pattern: "output directory",
		msg: UserMessage{
			Message: "The output directory could not be created",
			Action:  "Check permissions on the output path",
			Code:    "GEN006",
		},
	},
	{
		pattern: "unknown output mode",
		msg: UserMessage{
			Message: "The requested output mode is not recognized",
			Action:  "Use \"individual\" or \"combined\"",
			Code:    "GEN007",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000). Check the
// application logs for the original technical error when users report it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. It
// searches the known patterns (case-insensitive) and returns the first
// match, or the ERR000 fallback when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted display string for an error:
// "Message (Code: XXX). Action". Returns "" for a nil error.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern (not the generic
// ERR000 fallback) and is therefore suitable to show to users verbatim.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
