package core

// error_messages.go maps pipeline errors to user-facing messages with codes
// for support reference. Users see the code; the logs carry the full error.
//
//	SRC001 - Source missing: one or more data files were not found
//	         Action: check that every file listed in the manifest is in the data directory
//	SRC002 - Source unreadable: a data file could not be parsed
//	         Action: check the file's encoding and format in the manifest
//	SCH001 - Schema drift: a data file's columns do not match the known schema
//	         Action: update the alias table for the new column layout
//	SEL001 - Invalid selection: requested parties are not in the dataset
//	         Action: choose parties from the party list
//	SEL002 - Invalid range: the election range is empty or reversed
//	         Action: choose a range whose start is not after its end
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//	ERR000 - Unknown error (check application logs)
//
// Sentinel matches (errors.Is) are tried first, then text patterns for errors
// that come from outside this package.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorTarget struct {
	target error
	msg    UserMessage
}

// errorTargets is checked in order; the first sentinel found in the chain wins.
var errorTargets = []errorTarget{
	{
		target: ErrSourceNotFound,
		msg: UserMessage{
			Message: "One or more election data files were not found",
			Action:  "Make sure every file listed in the manifest is present in the data directory",
			Code:    "SRC001",
		},
	},
	{
		target: ErrSchemaDrift,
		msg: UserMessage{
			Message: "An election data file does not match the known column layout",
			Action:  "Update the column alias table for the new layout",
			Code:    "SCH001",
		},
	},
	{
		target: ErrInvalidRange,
		msg: UserMessage{
			Message: "The election range is empty or reversed",
			Action:  "Choose a range whose start is not after its end",
			Code:    "SEL002",
		},
	},
	{
		target: ErrInvalidSelection,
		msg: UserMessage{
			Message: "The selection is not valid for the loaded elections",
			Action:  "Choose parties from the party list",
			Code:    "SEL001",
		},
	},
	{
		target: ErrBadCell,
		msg: UserMessage{
			Message: "An election data file could not be read",
			Action:  "Check the file's encoding and format in the manifest",
			Code:    "SRC002",
		},
	},
	{
		target: ErrUnsupportedEncoding,
		msg: UserMessage{
			Message: "An election data file could not be read",
			Action:  "Check the file's encoding and format in the manifest",
			Code:    "SRC002",
		},
	},
	{
		target: ErrUnsupportedFormat,
		msg: UserMessage{
			Message: "An election data file could not be read",
			Action:  "Check the file's encoding and format in the manifest",
			Code:    "SRC002",
		},
	},
	{
		target: ErrEmptySource,
		msg: UserMessage{
			Message: "An election data file could not be read",
			Action:  "Check the file's encoding and format in the manifest",
			Code:    "SRC002",
		},
	},
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		target: context.DeadlineExceeded,
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again; the first request after a restart loads every election",
			Code:    "REQ002",
		},
	},
}

// errorPatterns catches errors that lost their sentinel, e.g. after crossing
// a string boundary. Matched case-insensitively with strings.Contains.
var errorPatterns = []struct {
	pattern string
	code    string
}{
	{"source not found", "SRC001"},
	{"no such file", "SRC001"},
	{"schema drift", "SCH001"},
	{"invalid selection", "SEL001"},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If nothing matches, a generic fallback message with code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, et := range errorTargets {
		if errors.Is(err, et.target) {
			return et.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return messageForCode(ep.code)
		}
	}

	// Anything else a reader failed on is an unreadable source: a corrupt
	// workbook, a malformed CSV, a permission error.
	var se *SourceError
	if errors.As(err, &se) {
		return messageForCode("SRC002")
	}

	return defaultMessage
}

func messageForCode(code string) UserMessage {
	for _, et := range errorTargets {
		if et.msg.Code == code {
			return et.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
