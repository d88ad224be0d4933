package web

// usermsg.go maps technical errors to localized, user-friendly messages.
// Users quote the error code to support staff; the original technical error
// only ever appears in the server log.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import "strings"

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

var errorPatterns = []errorPattern{
	// Input format errors (the only whole-batch failures)
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv, .xlsx, or .xls file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "exceeds",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller parts",
			Code:    "FILE002",
		},
	},
	{
		pattern: "unable to read file",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Re-export the file and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no rows found",
		msg: UserMessage{
			Message: "The file contains no data rows",
			Action:  "Upload a file with at least one data row",
			Code:    "FILE004",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column is missing from the file",
			Action:  "Check that the column headers match the import template",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Select a file to upload",
			Code:    "FILE006",
		},
	},

	// Import kind errors
	{
		pattern: "unknown import kind",
		msg: UserMessage{
			Message: "Unknown import type",
			Action:  "Use one of the configured import types",
			Code:    "IMP001",
		},
	},

	// Database errors
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this identifier already exists",
			Action:  "Review the reported rows for duplicates",
			Code:    "DB001",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "A referenced record no longer exists",
			Action:  "Refresh master data and try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DB003",
		},
	},

	// OCR errors
	{
		pattern: "text extraction aborted",
		msg: UserMessage{
			Message: "Document scanning timed out",
			Action:  "Try again with a smaller or clearer image",
			Code:    "OCR001",
		},
	},
	{
		pattern: "text extraction failed",
		msg: UserMessage{
			Message: "The document could not be scanned",
			Action:  "Try again with a clearer image",
			Code:    "OCR002",
		},
	},

	// Request lifecycle
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches. Support staff should
// check the server log for the original technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
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
