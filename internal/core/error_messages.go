package core

// Error Codes Reference
//
// Technical errors are mapped to user-facing messages with a code that can be
// quoted to support staff. Patterns are matched case-insensitively with
// strings.Contains and the first match wins.
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Too many exports: All export slots are busy
//	         Action: Please wait a moment and try again
//	         Patterns: "too many exports"
//
//	EXP002 - Render failed: The PDF could not be generated
//	         Action: Narrow the filter or try again
//	         Patterns: "render"
//
// # Data File Errors (FILE001-FILE099)
//
//	FILE001 - Missing file: The data file does not exist
//	          Action: Check DATA_FILE points at the spreadsheet
//	          Patterns: "no such file"
//
//	FILE002 - Unsupported file: The data file type is not supported
//	          Action: Use an .xlsx, .xlsm or .csv file
//	          Patterns: "unsupported data file"
//
//	FILE003 - Unreadable file: The data file could not be parsed
//	          Action: Open the file in a spreadsheet tool and re-save it
//	          Patterns: "read workbook", "read csv"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: The client went away
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout: The request took too long
//	         Action: Narrow the filter or try again later
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is ordered: specific patterns before general ones.
var errorPatterns = []errorPattern{
	// Export
	{
		pattern: "too many exports",
		msg: UserMessage{
			Message: "System is busy generating other exports",
			Action:  "Please wait a moment and try again",
			Code:    "EXP001",
		},
	},

	// Request lifecycle. These come before "render" so a cancelled render
	// reports the cancellation.
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Narrow the filter or try again later",
			Code:    "REQ002",
		},
	},

	{
		pattern: "render",
		msg: UserMessage{
			Message: "The PDF could not be generated",
			Action:  "Narrow the filter or try again",
			Code:    "EXP002",
		},
	},

	// Data file
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The data file does not exist",
			Action:  "Check DATA_FILE points at the spreadsheet",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported data file",
		msg: UserMessage{
			Message: "The data file type is not supported",
			Action:  "Use an .xlsx, .xlsm or .csv file",
			Code:    "FILE002",
		},
	},
	{
		pattern: "read workbook",
		msg: UserMessage{
			Message: "The data file could not be parsed",
			Action:  "Open the file in a spreadsheet tool and re-save it",
			Code:    "FILE003",
		},
	},
	{
		pattern: "read csv",
		msg: UserMessage{
			Message: "The data file could not be parsed",
			Action:  "Open the file in a spreadsheet tool and re-save it",
			Code:    "FILE003",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Unmatched errors map to ERR000; nil maps to the zero UserMessage.
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

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
